package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/utils"
)

// Settings 持久化的用户设置
type Settings struct {
	// 显示设置
	Fullscreen   bool `yaml:"fullscreen"`   // 启动时是否全屏
	WindowWidth  int  `yaml:"windowWidth"`  // 上次的窗口宽度
	WindowHeight int  `yaml:"windowHeight"` // 上次的窗口高度

	// 动画设置
	Variant string `yaml:"variant"` // 上次使用的变体

	// intro 变体上次的档位（下次启动时恢复）
	LastText  string `yaml:"lastText"`
	LastCount int    `yaml:"lastCount"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		Fullscreen:   false,
		WindowWidth:  config.DefaultWindowWidth,
		WindowHeight: config.DefaultWindowHeight,
		Variant:      config.VariantIntro,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *Settings      // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// OpenStorage 打开 gdata 存储
// 失败时返回 nil，调用方以降级模式（仅内存）继续运行
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return m
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，会记录日志并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，缺失字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetWindowSize 记录窗口尺寸，非正值被忽略
func (sm *SettingsManager) SetWindowSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	sm.settings.WindowWidth = width
	sm.settings.WindowHeight = height
}

// SetVariant 记录变体名称
func (sm *SettingsManager) SetVariant(name string) {
	sm.settings.Variant = name
}

// SetLastTier 记录 intro 变体的档位
func (sm *SettingsManager) SetLastTier(text string, count int) {
	sm.settings.LastText = text
	sm.settings.LastCount = count
}

// LastTier 返回上次保存的档位；没有保存过时 ok 为 false
func (sm *SettingsManager) LastTier() (tier config.Tier, ok bool) {
	if sm.settings.LastCount <= 0 {
		return config.Tier{}, false
	}
	return config.Tier{Text: sm.settings.LastText, Count: sm.settings.LastCount}, true
}

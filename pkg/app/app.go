// Package app 提供动画应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/game"
	"github.com/decker502/glyphswarm/pkg/scenes"
	"github.com/decker502/glyphswarm/pkg/swarm"
	"github.com/decker502/glyphswarm/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "glyphswarm"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 指定动画变体（intro 或 speech），为空则使用上次的设置
	Variant string
	// TierFile 档位表路径，为空则使用内置 data/tiers.yaml
	TierFile string
	// SpeechSources 创建 speech 场景时调用，返回转写来源（通常是 stdin）与回复生成器
	// 变体来自上次的设置时同样生效；为 nil 或返回 nil 表示不读取、不请求回复
	SpeechSources func() (io.Reader, scenes.Completer)
}

// App 是动画应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	input        *utils.PointerInput

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	closed                   bool
}

// NewApp 创建并初始化动画应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时档位表回退到内置默认值。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := game.NewSettingsManager(game.OpenStorage(AppName))
	resourceManager := game.NewResourceManager()

	tierFile := cfg.TierFile
	if tierFile == "" {
		tierFile = "data/tiers.yaml"
	}
	tiers := resourceManager.LoadTierTable(tierFile)

	input := &utils.PointerInput{}
	sampler := swarm.NewSampler(nil, swarm.DefaultMaxAttempts)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(variant string) (game.Scene, error) {
		switch variant {
		case config.VariantIntro:
			s, err := scenes.NewIntroScene(resourceManager, settings, tiers, input, sampler)
			if err != nil {
				return nil, err
			}
			return s, nil
		case config.VariantSpeech:
			var transcript io.Reader
			var completer scenes.Completer
			if cfg.SpeechSources != nil {
				transcript, completer = cfg.SpeechSources()
			}
			s, err := scenes.NewSpeechScene(resourceManager, transcript, completer, input, sampler)
			if err != nil {
				return nil, err
			}
			return s, nil
		default:
			return nil, fmt.Errorf("unknown variant %q", variant)
		}
	})

	variant := cfg.Variant
	if variant == "" {
		variant = settings.GetSettings().Variant
	}
	if utils.IsMobile() && variant != config.VariantIntro {
		// 移动端没有键盘与转写来源
		log.Printf("[App] mobile mode: %s variant not available, using intro", variant)
		variant = config.VariantIntro
	}
	if _, err := config.GetVariant(variant); err != nil {
		return nil, err
	}
	settings.SetVariant(variant)

	log.Printf("[App] Starting variant: %s", variant)
	sceneManager.LoadVariant(variant)
	if sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("failed to create %s scene", variant)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		input:        input,
	}, nil
}

// Update 更新动画逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			s := a.settings.GetSettings()
			ebiten.SetWindowSize(s.WindowWidth, s.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", s.WindowWidth, s.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		wasFullscreen := ebiten.IsFullscreen()
		if wasFullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!wasFullscreen)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制当前帧
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 画布尺寸与窗口尺寸一致（可调整大小）
//
// 尺寸变化会在下一次 Update 中被动画循环检测到并重新栅格化文字。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.input.SetViewport(outsideWidth, outsideHeight)
	if !ebiten.IsFullscreen() {
		a.settings.SetWindowSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// GetSettings 返回设置管理器
func (a *App) GetSettings() *game.SettingsManager {
	return a.settings
}

// Close 保存设置并销毁当前场景，可重复调用
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.sceneManager.Shutdown()
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Tier 一档文字配置：显示文字 + 粒子数
type Tier struct {
	Text  string `yaml:"text"`
	Count int    `yaml:"count"`
}

// KeyBinding 按键到档位的映射
type KeyBinding struct {
	Keys []string `yaml:"keys"` // 逻辑按键名（小写），如 "escape", "space"
	Tier Tier     `yaml:"tier"`
}

// TierTable 按键档位表
//
// 查找顺序：
//  1. Bindings 中列出的特殊按键
//  2. 其他字符键：显示该字符（大写），粒子数为 CharacterCount
type TierTable struct {
	Default        Tier         `yaml:"default"`        // 启动与重置时的档位
	ResetKey       string       `yaml:"resetKey"`       // 重置键（逻辑按键名）
	Bindings       []KeyBinding `yaml:"bindings"`       // 特殊按键
	CharacterCount int          `yaml:"characterCount"` // 普通字符键的粒子数
}

// 逻辑按键名
const (
	KeyEscape    = "escape"
	KeyEnter     = "enter"
	KeyShift     = "shift"
	KeyControl   = "control"
	KeyAlt       = "alt"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyCapsLock  = "capslock"
	KeyTab       = "tab"
	KeySpace     = "space"
)

// DefaultTierTable 内置档位表（与 data/tiers.yaml 一致）
func DefaultTierTable() *TierTable {
	hello := Tier{Text: "Hello", Count: 3800}
	return &TierTable{
		Default:  hello,
		ResetKey: KeyEscape,
		Bindings: []KeyBinding{
			{Keys: []string{KeyEscape, KeyEnter, KeyShift, KeyControl, KeyAlt}, Tier: hello},
			{Keys: []string{KeyBackspace, KeyDelete}, Tier: Tier{Text: "Del", Count: 1800}},
			{Keys: []string{KeyCapsLock}, Tier: Tier{Text: "안녕!", Count: 3800}},
			{Keys: []string{KeyTab, KeySpace}, Tier: Tier{Text: "!", Count: 1000}},
		},
		CharacterCount: 1800,
	}
}

// LoadTierTable 从 YAML 文件加载档位表
func LoadTierTable(filePath string) (*TierTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier table file: %w", err)
	}
	return ParseTierTable(data)
}

// ParseTierTable 解析并校验 YAML 档位表
func ParseTierTable(data []byte) (*TierTable, error) {
	var table TierTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse tier table YAML: %w", err)
	}

	if err := validateTierTable(&table); err != nil {
		return nil, fmt.Errorf("invalid tier table: %w", err)
	}

	// 按键名统一小写
	table.ResetKey = strings.ToLower(table.ResetKey)
	for i := range table.Bindings {
		for j, k := range table.Bindings[i].Keys {
			table.Bindings[i].Keys[j] = strings.ToLower(k)
		}
	}
	return &table, nil
}

// validateTierTable 验证档位表的有效性
func validateTierTable(table *TierTable) error {
	if table.Default.Count <= 0 {
		return fmt.Errorf("default tier count must be positive, got %d", table.Default.Count)
	}
	if table.CharacterCount <= 0 {
		return fmt.Errorf("characterCount must be positive, got %d", table.CharacterCount)
	}
	if table.ResetKey == "" {
		return fmt.Errorf("resetKey cannot be empty")
	}

	seen := make(map[string]bool)
	for i, b := range table.Bindings {
		if len(b.Keys) == 0 {
			return fmt.Errorf("binding %d has no keys", i)
		}
		if b.Tier.Count <= 0 {
			return fmt.Errorf("binding %d tier count must be positive, got %d", i, b.Tier.Count)
		}
		for _, k := range b.Keys {
			k = strings.ToLower(k)
			if seen[k] {
				return fmt.Errorf("key %q bound more than once", k)
			}
			seen[k] = true
		}
	}
	return nil
}

// Resolve 根据按键查找档位
//
// 参数：
//   - key: 逻辑按键名，非特殊键传空字符串
//   - char: 按键产生的字符，没有字符时传 0
//
// 返回：
//   - Tier: 匹配到的档位
//   - bool: 是否匹配
func (t *TierTable) Resolve(key string, char rune) (Tier, bool) {
	if key != "" {
		key = strings.ToLower(key)
		for _, b := range t.Bindings {
			for _, k := range b.Keys {
				if k == key {
					return b.Tier, true
				}
			}
		}
	}

	if char != 0 && unicode.IsPrint(char) && !unicode.IsSpace(char) {
		return Tier{Text: string(unicode.ToUpper(char)), Count: t.CharacterCount}, true
	}
	return Tier{}, false
}

// IsReset 判断按键是否为重置键
func (t *TierTable) IsReset(key string) bool {
	return key != "" && strings.EqualFold(key, t.ResetKey)
}

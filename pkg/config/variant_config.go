package config

import (
	"fmt"
	"image/color"
)

// 窗口默认尺寸（可调整大小）
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// 动画变体名称
const (
	VariantIntro  = "intro"
	VariantSpeech = "speech"
)

// SpeechPlaceholder 没有外部文字时显示的占位文字
const SpeechPlaceholder = "말해보세요"

// HUD 提示文字（intro 变体）
var IntroHints = []string{
	"MOVE AROUND",
	"TYPE A CHARACTER / RESET THROUGH ESC",
}

// VariantConfig 动画变体参数
type VariantConfig struct {
	Name            string
	InitialText     string
	InitialCount    int
	SizeMin         float64
	SizeMax         float64
	TextCenterY     float64     // 文字垂直中心（画布高度比例）
	RepulsionRadius float64     // 不大于 0 表示斥力始终生效
	ScatterOnBuild  bool        // 初始粒子随机散布（飞入效果）
	Background      color.NRGBA // 每帧覆盖的背景色，A < 255 时产生拖尾
	ShowHints       bool
}

// Variants 内置变体
//
// intro：按键切换档位，斥力始终生效，半透明背景产生拖尾
// speech：外部文字驱动，斥力半径 80，每帧清屏
var Variants = map[string]VariantConfig{
	VariantIntro: {
		Name:            VariantIntro,
		InitialText:     "Hello",
		InitialCount:    3800,
		SizeMin:         8,
		SizeMax:         10,
		TextCenterY:     0.55,
		RepulsionRadius: 0,
		ScatterOnBuild:  false,
		Background:      color.NRGBA{255, 255, 253, 20},
		ShowHints:       true,
	},
	VariantSpeech: {
		Name:            VariantSpeech,
		InitialText:     SpeechPlaceholder,
		InitialCount:    10000,
		SizeMin:         6,
		SizeMax:         10,
		TextCenterY:     0.5,
		RepulsionRadius: 80,
		ScatterOnBuild:  true,
		Background:      color.NRGBA{255, 255, 255, 255},
		ShowHints:       false,
	},
}

// GetVariant 按名称查找变体
func GetVariant(name string) (VariantConfig, error) {
	v, ok := Variants[name]
	if !ok {
		return VariantConfig{}, fmt.Errorf("unknown variant %q (want %q or %q)", name, VariantIntro, VariantSpeech)
	}
	return v, nil
}

//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.glyphswarm -o build/android/glyphswarm.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/GlyphSwarm.xcframework -v ./mobile
//
// 移动端不嵌入 data/，档位表使用内置默认值。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/glyphswarm/pkg/app"
	"github.com/decker502/glyphswarm/pkg/config"
)

func init() {
	// 移动端没有键盘与 stdin，只运行 intro 变体（触摸产生斥力）
	cfg := app.Config{
		Verbose: true,
		Variant: config.VariantIntro,
	}

	glyphApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(glyphApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

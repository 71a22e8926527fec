// Package swarm 实现粒子文字动画的核心：粒子、放置采样器和粒子场
//
// 本包不依赖任何具体的绘制后端。绘制通过 Renderer 接口完成，
// 指针位置和视口尺寸通过 InputSource 接口读取，
// Ebitengine 与终端前端分别提供各自的实现。
package swarm

import (
	"image/color"
	"math"
)

// Vec2 二维坐标（像素）
type Vec2 struct {
	X, Y float64
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len 返回向量长度
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Renderer 绘制能力
type Renderer interface {
	// Fill 用颜色覆盖整个画布（A < 255 时产生拖尾效果）
	Fill(c color.Color)
	// FillCircle 以 (x, y) 为圆心绘制实心圆
	FillCircle(x, y, radius float64, c color.RGBA)
}

// InputSource 环境输入能力
type InputSource interface {
	// Pointer 返回当前指针位置；ok 为 false 表示没有可用的指针
	Pointer() (p Vec2, ok bool)
	// Viewport 返回当前画布尺寸
	Viewport() (width, height int)
}

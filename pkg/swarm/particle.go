package swarm

import (
	"image/color"
	"math"

	"github.com/decker502/glyphswarm/internal/glyph"
)

// Palette 粒子颜色表，创建粒子时从中随机挑选
var Palette = []color.RGBA{
	{172, 9, 60, 255},    // 红
	{234, 79, 96, 255},   // 粉
	{248, 135, 96, 255},  // 橙粉
	{180, 147, 115, 255}, // 土黄
	{255, 220, 72, 255},  // 黄
	{222, 215, 153, 255}, // 芥末
	{11, 119, 169, 255},  // 海蓝
	{11, 156, 168, 255},  // 青绿
	{15, 209, 224, 255},  // 天蓝
	{170, 215, 233, 255}, // 蓝灰
	{69, 61, 216, 255},   // 海军蓝
	{130, 88, 178, 255},  // 浅紫
	{99, 28, 195, 255},   // 紫
	{228, 218, 211, 255}, // 灰
}

// Motion 粒子运动参数
type Motion struct {
	// Ease 每帧向目标点靠近的比例
	Ease float64
	// RepulsionStrength 斥力系数，force = RepulsionStrength / (d + 1)
	RepulsionStrength float64
	// RepulsionRadius 斥力作用半径；不大于 0 表示始终生效
	RepulsionRadius float64
}

// DefaultMotion 默认运动参数（半径 80）
func DefaultMotion() Motion {
	return Motion{
		Ease:              0.1,
		RepulsionStrength: 200,
		RepulsionRadius:   80,
	}
}

// Particle 单个动画粒子
type Particle struct {
	Pos   Vec2 // 当前位置
	Dest  Vec2 // 目标位置
	Size  float64
	Color color.RGBA
}

// Update 推进一帧：先缓动靠近目标点，再施加指针斥力
//
// 顺序不可交换。位置不做裁剪，强斥力下粒子可以短暂离开画布。
// hasPointer 为 false 时跳过斥力。
func (p *Particle) Update(pointer Vec2, hasPointer bool, m Motion) {
	p.Pos.X += (p.Dest.X - p.Pos.X) * m.Ease
	p.Pos.Y += (p.Dest.Y - p.Pos.Y) * m.Ease

	if !hasPointer {
		return
	}

	d := math.Hypot(pointer.X-p.Pos.X, pointer.Y-p.Pos.Y)
	if m.RepulsionRadius > 0 && d >= m.RepulsionRadius {
		return
	}
	force := m.RepulsionStrength / (d + 1)
	angle := math.Atan2(p.Pos.Y-pointer.Y, p.Pos.X-pointer.X)
	p.Pos.X += math.Cos(angle) * force
	p.Pos.Y += math.Sin(angle) * force
}

// Draw 以 Size 为直径绘制粒子
func (p *Particle) Draw(r Renderer) {
	r.FillCircle(p.Pos.X, p.Pos.Y, p.Size/2, p.Color)
}

// SetNewDestination 从 mask 采样新的目标点，当前位置保持不变
// mask 为空时不做任何修改
func (p *Particle) SetNewDestination(s *Sampler, mask *glyph.Mask) {
	if mask.Empty() {
		return
	}
	x, y, _ := s.Sample(mask)
	p.Dest = Vec2{x, y}
}

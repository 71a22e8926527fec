// Package render 提供 swarm.Renderer / swarm.InputSource 的具体实现
//
// EbitenRenderer 绘制到 Ebitengine 画布，TerminalRenderer 绘制到 tcell 终端。
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/glyphswarm/pkg/swarm"
)

// EbitenRenderer 将粒子绘制到 Ebitengine 图像上
// 每帧用当帧的 screen 创建，不要跨帧保存
type EbitenRenderer struct {
	screen *ebiten.Image
}

var _ swarm.Renderer = (*EbitenRenderer)(nil)

// NewEbitenRenderer 创建绑定到 screen 的渲染器
func NewEbitenRenderer(screen *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{screen: screen}
}

// Fill 用半透明矩形覆盖整个画布
// 配合 ebiten.SetScreenClearedEveryFrame(false) 产生拖尾
func (r *EbitenRenderer) Fill(c color.Color) {
	b := r.screen.Bounds()
	vector.DrawFilledRect(r.screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), c, false)
}

// FillCircle 绘制抗锯齿实心圆
func (r *EbitenRenderer) FillCircle(x, y, radius float64, c color.RGBA) {
	vector.DrawFilledCircle(r.screen, float32(x), float32(y), float32(radius), c, true)
}

// DrawCenteredText 以 (x, y) 为中心绘制一行文字
func (r *EbitenRenderer) DrawCenteredText(s string, face text.Face, x, y float64, c color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(r.screen, s, face, op)
}

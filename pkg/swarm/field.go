package swarm

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/glyphswarm/internal/glyph"
)

// FieldConfig 粒子场配置
type FieldConfig struct {
	Count   int     // 初始粒子数
	Text    string  // 初始文字
	SizeMin float64 // 粒子直径下限
	SizeMax float64 // 粒子直径上限（不含）
	Motion  Motion
	Style   glyph.Style
	// ScatterOnBuild 初始构建时把粒子随机散布在画布上，
	// 为 false 时粒子直接出现在目标点（无飞入）
	ScatterOnBuild bool
}

// TextRasterizer 把文字栅格化为 Mask（*glyph.Rasterizer 实现了该接口）
type TextRasterizer interface {
	Rasterize(text string, width, height int, style glyph.Style) (*glyph.Mask, error)
}

// Field 粒子场：持有全部粒子、当前 Mask 与当前文字
type Field struct {
	cfg        FieldConfig
	rasterizer TextRasterizer
	sampler    *Sampler

	particles []*Particle
	mask      *glyph.Mask
	text      string
	width     int
	height    int
}

// NewField 创建粒子场，栅格化初始文字并构建 cfg.Count 个粒子
//
// 画布为零尺寸时返回一个空 Mask 的粒子场，粒子停留在原点，
// 等到第一次 Resize 后再获得目标点。
func NewField(cfg FieldConfig, rasterizer TextRasterizer, sampler *Sampler, width, height int) (*Field, error) {
	if rasterizer == nil {
		return nil, fmt.Errorf("rasterizer is nil")
	}
	if sampler == nil {
		sampler = NewSampler(nil, 0)
	}
	if cfg.Count < 0 {
		return nil, fmt.Errorf("invalid particle count %d", cfg.Count)
	}
	if cfg.SizeMax <= cfg.SizeMin {
		cfg.SizeMax = cfg.SizeMin + 1
	}

	f := &Field{
		cfg:        cfg,
		rasterizer: rasterizer,
		sampler:    sampler,
		text:       cfg.Text,
		width:      width,
		height:     height,
	}
	m, err := f.rasterize(cfg.Text, width, height)
	if err != nil {
		return nil, err
	}
	f.mask = m
	f.rebuild(cfg.Count, cfg.ScatterOnBuild)
	log.Printf("[Field] built %d particles for %q (%dx%d)", len(f.particles), f.text, width, height)
	return f, nil
}

// rasterize 栅格化 text，不修改粒子场状态
// 零尺寸画布返回 nil Mask，不视为错误
func (f *Field) rasterize(text string, width, height int) (*glyph.Mask, error) {
	m, err := f.rasterizer.Rasterize(text, width, height, f.cfg.Style)
	if errors.Is(err, glyph.ErrEmptyCanvas) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %q: %w", text, err)
	}
	return m, nil
}

// retarget 换上新 Mask 并为每个粒子采样新目标点
func (f *Field) retarget(m *glyph.Mask) {
	f.mask = m
	for _, p := range f.particles {
		p.SetNewDestination(f.sampler, f.mask)
	}
}

// rebuild 重建全部粒子；每个新粒子的目标点重新采样
func (f *Field) rebuild(count int, scatter bool) {
	f.particles = make([]*Particle, count)
	for i := range f.particles {
		p := &Particle{
			Size:  f.sampler.Float(f.cfg.SizeMin, f.cfg.SizeMax),
			Color: Palette[f.sampler.IntN(len(Palette))],
		}
		p.SetNewDestination(f.sampler, f.mask)
		if scatter && f.width > 0 && f.height > 0 {
			p.Pos = f.sampler.Random(f.width, f.height)
		} else {
			p.Pos = p.Dest
		}
		f.particles[i] = p
	}
}

// Retarget 切换显示文字：重新栅格化，并为每个粒子采样新目标点
// 粒子当前位置不变，之后的帧逐步缓动到新目标；零尺寸画布时只记录文字。
// 栅格化失败时文字与目标点保持原样。
func (f *Field) Retarget(text string) error {
	m, err := f.rasterize(text, f.width, f.height)
	if err != nil {
		return err
	}
	f.text = text
	if m != nil {
		f.retarget(m)
	}
	return nil
}

// SetTier 切换文字与粒子数
//
// 粒子数变化时整体重建，新粒子直接位于目标点；
// 粒子数不变时等同于 Retarget，保留已有粒子的当前位置。
func (f *Field) SetTier(text string, count int) error {
	if count < 0 {
		return fmt.Errorf("invalid particle count %d", count)
	}
	if count == len(f.particles) {
		return f.Retarget(text)
	}

	m, err := f.rasterize(text, f.width, f.height)
	if err != nil {
		return err
	}
	f.text = text
	if m != nil {
		f.mask = m
	}
	f.rebuild(count, false)
	log.Printf("[Field] rebuilt %d particles for %q", count, text)
	return nil
}

// Resize 更新视口尺寸并以当前文字重新定位目标点
// 粒子数不变，粒子不会瞬移到新目标
func (f *Field) Resize(width, height int) error {
	m, err := f.rasterize(f.text, width, height)
	if err != nil {
		return err
	}
	f.width, f.height = width, height
	if m != nil {
		f.retarget(m)
	}
	return nil
}

// Update 更新全部粒子
func (f *Field) Update(pointer Vec2, hasPointer bool) {
	for _, p := range f.particles {
		p.Update(pointer, hasPointer, f.cfg.Motion)
	}
}

// Draw 按粒子顺序绘制（顺序即叠放次序）
func (f *Field) Draw(r Renderer) {
	for _, p := range f.particles {
		p.Draw(r)
	}
}

// Step 逐个粒子执行更新与绘制（每个粒子先移动再画在新位置）
func (f *Field) Step(pointer Vec2, hasPointer bool, r Renderer) {
	for _, p := range f.particles {
		p.Update(pointer, hasPointer, f.cfg.Motion)
		p.Draw(r)
	}
}

// Particles 返回粒子切片（只读使用）
func (f *Field) Particles() []*Particle {
	return f.particles
}

// Len 返回粒子数
func (f *Field) Len() int {
	return len(f.particles)
}

// Mask 返回当前 Mask
func (f *Field) Mask() *glyph.Mask {
	return f.mask
}

// Text 返回当前文字
func (f *Field) Text() string {
	return f.text
}

// Viewport 返回当前视口尺寸
func (f *Field) Viewport() (int, int) {
	return f.width, f.height
}

// Motion 返回当前运动参数
func (f *Field) Motion() Motion {
	return f.cfg.Motion
}

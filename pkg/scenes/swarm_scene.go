package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/game"
	"github.com/decker502/glyphswarm/pkg/render"
	"github.com/decker502/glyphswarm/pkg/swarm"
)

// swarmScene 两个变体共用的部分：延迟创建动画循环、绘制背景与粒子
//
// 视口尺寸在第一次 Layout 之后才可知，因此循环在第一个有效尺寸的帧才创建，
// 保证初始粒子直接出现在目标点上。
type swarmScene struct {
	variant config.VariantConfig
	input   swarm.InputSource
	sampler *swarm.Sampler

	loop *game.Loop

	// 循环创建前收到的档位/文字，创建时作为初始值
	initialText  string
	initialCount int
}

func newSwarmScene(variant config.VariantConfig, input swarm.InputSource, sampler *swarm.Sampler) swarmScene {
	return swarmScene{
		variant:      variant,
		input:        input,
		sampler:      sampler,
		initialText:  variant.InitialText,
		initialCount: variant.InitialCount,
	}
}

// ensureLoop 视口有效时获取（或创建）进程级动画循环
func (s *swarmScene) ensureLoop() *game.Loop {
	if s.loop != nil && !s.loop.Destroyed() {
		return s.loop
	}

	w, h := s.input.Viewport()
	if w <= 0 || h <= 0 {
		return nil
	}

	loop, err := game.AcquireLoop(func() (*game.Loop, error) {
		return game.NewVariantLoop(s.variant, s.initialText, s.initialCount, s.sampler, w, h)
	})
	if err != nil {
		log.Printf("[%sScene] Warning: %v", s.variant.Name, err)
		return nil
	}

	log.Printf("[%sScene] animation loop ready (%dx%d)", s.variant.Name, w, h)
	s.loop = loop
	return loop
}

// setTier 切换档位；循环尚未创建时记为初始值
func (s *swarmScene) setTier(text string, count int) {
	if s.loop == nil {
		s.initialText, s.initialCount = text, count
		return
	}
	s.loop.SetTier(text, count)
}

// setText 切换文字；循环尚未创建时记为初始值
func (s *swarmScene) setText(text string) {
	if s.loop == nil {
		s.initialText = text
		return
	}
	s.loop.SetText(text)
}

func (s *swarmScene) tick() {
	if loop := s.ensureLoop(); loop != nil {
		loop.Tick(s.input)
	}
}

func (s *swarmScene) draw(screen *ebiten.Image) *render.EbitenRenderer {
	r := render.NewEbitenRenderer(screen)
	r.Fill(s.variant.Background)
	if s.loop != nil {
		s.loop.Draw(r)
	}
	return r
}

// Teardown 停止动画循环，可重复调用
func (s *swarmScene) Teardown() {
	if s.loop != nil {
		s.loop.Destroy()
	}
}

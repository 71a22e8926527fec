package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/game"
	"github.com/decker502/glyphswarm/pkg/swarm"
	"github.com/decker502/glyphswarm/pkg/utils"
)

// hintColor HUD 提示文字颜色
var hintColor = color.Gray{Y: 160}

// hintFadeSeconds 提示文字淡入时长
const hintFadeSeconds = 1.5

// IntroScene 按键驱动的粒子文字场景
//
// 特殊键切换到固定档位，普通字符键显示该字符，Esc 恢复默认档位。
type IntroScene struct {
	swarmScene

	tiers    *config.TierTable
	settings *game.SettingsManager
	hintFace *text.GoTextFace
	elapsed  float64

	// KeySource 返回本帧按键，测试中可替换
	KeySource func() []utils.KeyEvent
}

// NewIntroScene 创建 intro 场景
//
// 如果设置中保存了上次的档位，从该档位开始。
func NewIntroScene(rm *game.ResourceManager, settings *game.SettingsManager, tiers *config.TierTable, input swarm.InputSource, sampler *swarm.Sampler) (*IntroScene, error) {
	variant, err := config.GetVariant(config.VariantIntro)
	if err != nil {
		return nil, err
	}

	s := &IntroScene{
		swarmScene: newSwarmScene(variant, input, sampler),
		tiers:      tiers,
		settings:   settings,
		KeySource:  func() []utils.KeyEvent { return utils.AppendKeyEvents(nil) },
	}

	start := tiers.Default
	if settings != nil {
		if last, ok := settings.LastTier(); ok {
			start = last
			log.Printf("[IntroScene] restoring last tier %q (%d)", last.Text, last.Count)
		}
	}
	s.initialText, s.initialCount = start.Text, start.Count

	if rm != nil {
		face, err := rm.LoadFont(game.FontRegular, 16)
		if err != nil {
			log.Printf("[IntroScene] Warning: hint font unavailable: %v", err)
		} else {
			s.hintFace = face
		}
	}
	return s, nil
}

// HandleKey 把一次按键映射为档位变化
// 返回 false 表示按键没有对应的档位
func (s *IntroScene) HandleKey(ev utils.KeyEvent) bool {
	tier, ok := s.tiers.Resolve(ev.Key, ev.Char)
	if s.tiers.IsReset(ev.Key) {
		tier, ok = s.tiers.Default, true
	}
	if !ok {
		return false
	}

	log.Printf("[IntroScene] key %q/%q -> %q (%d)", ev.Key, ev.Char, tier.Text, tier.Count)
	s.setTier(tier.Text, tier.Count)
	if s.settings != nil {
		s.settings.SetLastTier(tier.Text, tier.Count)
	}
	return true
}

// Update 处理按键并推进一帧
func (s *IntroScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	for _, ev := range s.KeySource() {
		if s.HandleKey(ev) {
			// 每帧只处理第一个有效按键
			break
		}
	}
	s.tick()
}

// Draw 绘制拖尾背景、粒子与提示文字
func (s *IntroScene) Draw(screen *ebiten.Image) {
	r := s.draw(screen)
	if !s.variant.ShowHints {
		return
	}

	w, h := s.input.Viewport()
	alpha := utils.FadeIn(s.elapsed, hintFadeSeconds)
	c := color.NRGBA{hintColor.Y, hintColor.Y, hintColor.Y, uint8(255 * alpha)}
	y := 0.05
	for _, hint := range config.IntroHints {
		r.DrawCenteredText(hint, s.hintFace, float64(w)*0.5, float64(h)*y, c)
		y += 0.02
	}
}

// SaveOnExit 保存当前档位
func (s *IntroScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[IntroScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

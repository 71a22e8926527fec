package scenes

import (
	"context"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/glyphswarm/internal/textsource"
	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/game"
	"github.com/decker502/glyphswarm/pkg/swarm"
	"github.com/decker502/glyphswarm/pkg/utils"
)

// Completer 根据用户文字生成回复（例如 chat completions 客户端）
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// speechUpdate 后台 goroutine 发往场景的消息
type speechUpdate struct {
	transcript *string
	reply      *string
	err        error
}

// overlay 文字样式
var (
	overlayColor = color.Gray{Y: 40}
	errorColor   = color.RGBA{172, 9, 60, 255}
)

// 回复文字换行宽度：有字体时为画布宽度的比例，否则按字符数
const (
	overlayWidthRatio = 0.8
	overlayLineRunes  = 48
)

// SpeechScene 外部文字驱动的粒子场景
//
// 转写文字逐行从 reader 读取；非空转写会交给 Completer 生成回复。
// 粒子显示 转写 > 回复 > 占位文字，回复全文显示在底部。
type SpeechScene struct {
	swarmScene

	completer Completer
	updates   chan speechUpdate
	ctx       context.Context
	cancel    context.CancelFunc

	transcript string
	reply      string
	loading    bool
	lastErr    error

	overlayFace *text.GoTextFace

	// KeySource 返回本帧按键，测试中可替换
	KeySource func() []utils.KeyEvent
}

// NewSpeechScene 创建 speech 场景
//
// 参数：
//   - reader: 转写来源，nil 表示不读取（只显示占位文字）
//   - completer: 回复生成器，nil 表示不请求回复
func NewSpeechScene(rm *game.ResourceManager, reader io.Reader, completer Completer, input swarm.InputSource, sampler *swarm.Sampler) (*SpeechScene, error) {
	variant, err := config.GetVariant(config.VariantSpeech)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &SpeechScene{
		swarmScene: newSwarmScene(variant, input, sampler),
		completer:  completer,
		updates:    make(chan speechUpdate, 16),
		ctx:        ctx,
		cancel:     cancel,
		KeySource:  func() []utils.KeyEvent { return utils.AppendKeyEvents(nil) },
	}

	if rm != nil {
		if face, err := rm.LoadFont(game.FontRegular, 20); err == nil {
			s.overlayFace = face
		} else {
			log.Printf("[SpeechScene] Warning: overlay font unavailable: %v", err)
		}
	}

	if reader != nil {
		go func() {
			err := textsource.ReadLines(ctx, reader, func(tr textsource.Transcript) {
				text := tr.Text
				s.send(speechUpdate{transcript: &text})
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("[SpeechScene] transcript source stopped: %v", err)
			}
		}()
	}
	return s, nil
}

// send 投递消息；场景销毁后丢弃
func (s *SpeechScene) send(u speechUpdate) {
	select {
	case s.updates <- u:
	case <-s.ctx.Done():
	}
}

// SubmitTranscript 注入一条转写（与读取 goroutine 的效果相同）
func (s *SpeechScene) SubmitTranscript(text string) {
	s.send(speechUpdate{transcript: &text})
}

// requestReply 在后台请求回复
func (s *SpeechScene) requestReply(prompt string) {
	if s.completer == nil || prompt == "" {
		return
	}
	s.loading = true
	go func() {
		reply, err := s.completer.Complete(s.ctx, prompt)
		if err != nil {
			s.send(speechUpdate{err: err})
			return
		}
		s.send(speechUpdate{reply: &reply})
	}()
}

// applyUpdates 在帧开始时应用后台消息
func (s *SpeechScene) applyUpdates() {
	changed := false
	for {
		select {
		case u := <-s.updates:
			switch {
			case u.err != nil:
				s.loading = false
				s.lastErr = u.err
				log.Printf("[SpeechScene] Error processing with completion API: %v", u.err)
			case u.reply != nil:
				s.loading = false
				s.lastErr = nil
				s.reply = *u.reply
				changed = true
			case u.transcript != nil:
				s.transcript = *u.transcript
				changed = true
				s.requestReply(s.transcript)
			}
		default:
			if changed {
				s.setText(s.DisplayText())
			}
			return
		}
	}
}

// DisplayText 当前应显示的文字
func (s *SpeechScene) DisplayText() string {
	return textsource.DisplayText(s.transcript, s.reply, config.SpeechPlaceholder)
}

// reset 清空转写与回复（对应重新开始聆听）
func (s *SpeechScene) reset() {
	s.transcript, s.reply, s.lastErr = "", "", nil
	s.setText(s.DisplayText())
}

// Update 应用后台消息、处理按键并推进一帧
func (s *SpeechScene) Update(deltaTime float64) {
	for _, ev := range s.KeySource() {
		if ev.Key == config.KeyEscape {
			s.reset()
			break
		}
	}
	s.applyUpdates()
	s.tick()
}

// Draw 绘制粒子与文字覆盖层
func (s *SpeechScene) Draw(screen *ebiten.Image) {
	r := s.draw(screen)
	w, h := s.input.Viewport()

	switch {
	case s.lastErr != nil:
		r.DrawCenteredText(s.lastErr.Error(), s.overlayFace, float64(w)*0.5, 24, errorColor)
	case s.loading:
		r.DrawCenteredText("처리 중...", s.overlayFace, float64(w)*0.5, 24, overlayColor)
	case s.transcript != "":
		r.DrawCenteredText(s.transcript, s.overlayFace, float64(w)*0.5, 24, overlayColor)
	}

	maxWidth := float64(w) * overlayWidthRatio
	if s.overlayFace == nil {
		maxWidth = overlayLineRunes
	}
	lines := utils.WrapText(s.reply, maxWidth, utils.FaceMeasure(s.overlayFace))
	y := float64(h) - 28*float64(len(lines))
	for _, line := range lines {
		r.DrawCenteredText(line, s.overlayFace, float64(w)*0.5, y, overlayColor)
		y += 28
	}
}

// Teardown 停止后台 goroutine 与动画循环，可重复调用
func (s *SpeechScene) Teardown() {
	s.cancel()
	s.swarmScene.Teardown()
}

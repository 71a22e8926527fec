package scenes

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/swarm"
	"github.com/decker502/glyphswarm/pkg/utils"
)

type fakeInput struct {
	w, h int
}

func (f *fakeInput) Pointer() (swarm.Vec2, bool) { return swarm.Vec2{}, false }
func (f *fakeInput) Viewport() (int, int)        { return f.w, f.h }

func testSampler() *swarm.Sampler {
	return swarm.NewSampler(rand.New(rand.NewPCG(7, 11)), swarm.DefaultMaxAttempts)
}

// keyQueue 每次调用返回一帧的按键
type keyQueue struct {
	frames [][]utils.KeyEvent
}

func (q *keyQueue) next() []utils.KeyEvent {
	if len(q.frames) == 0 {
		return nil
	}
	f := q.frames[0]
	q.frames = q.frames[1:]
	return f
}

func newTestIntro(t *testing.T, in *fakeInput) (*IntroScene, *keyQueue) {
	t.Helper()
	s, err := NewIntroScene(nil, nil, config.DefaultTierTable(), in, testSampler())
	if err != nil {
		t.Fatalf("NewIntroScene error: %v", err)
	}
	keys := &keyQueue{}
	s.KeySource = keys.next
	t.Cleanup(s.Teardown)
	return s, keys
}

func TestIntroSceneWaitsForViewport(t *testing.T) {
	in := &fakeInput{}
	s, _ := newTestIntro(t, in)

	s.Update(1.0 / 60)
	if s.loop != nil {
		t.Fatal("loop should not be created before the viewport is known")
	}

	in.w, in.h = 200, 100
	s.Update(1.0 / 60)
	if s.loop == nil {
		t.Fatal("loop should be created once the viewport is known")
	}
	if got := s.loop.Field().Len(); got != 3800 {
		t.Errorf("initial particle count = %d, want 3800", got)
	}
	if got := s.loop.Field().Text(); got != "Hello" {
		t.Errorf("initial text = %q, want Hello", got)
	}
}

func TestIntroSceneKeyBeforeLoopBecomesInitialTier(t *testing.T) {
	in := &fakeInput{}
	s, _ := newTestIntro(t, in)

	if !s.HandleKey(utils.KeyEvent{Key: config.KeyBackspace}) {
		t.Fatal("backspace should map to a tier")
	}

	in.w, in.h = 200, 100
	s.Update(1.0 / 60)
	if got := s.loop.Field().Len(); got != 1800 {
		t.Errorf("particle count = %d, want 1800", got)
	}
	if got := s.loop.Field().Text(); got != "Del" {
		t.Errorf("text = %q, want Del", got)
	}
}

func TestIntroSceneCharacterKey(t *testing.T) {
	in := &fakeInput{w: 200, h: 100}
	s, keys := newTestIntro(t, in)
	s.Update(1.0 / 60)

	keys.frames = [][]utils.KeyEvent{{{Char: 'a'}}}
	s.Update(1.0 / 60)

	if got := s.loop.Field().Text(); got != "A" {
		t.Errorf("text = %q, want A", got)
	}
	if got := s.loop.Field().Len(); got != 1800 {
		t.Errorf("particle count = %d, want 1800", got)
	}
}

func TestIntroSceneFirstKeyPerFrameWins(t *testing.T) {
	in := &fakeInput{w: 200, h: 100}
	s, keys := newTestIntro(t, in)
	s.Update(1.0 / 60)

	keys.frames = [][]utils.KeyEvent{{{Key: config.KeyTab}, {Char: 'z'}}}
	s.Update(1.0 / 60)

	if got := s.loop.Field().Text(); got != "!" {
		t.Errorf("text = %q, want !", got)
	}
	if got := s.loop.Field().Len(); got != 1000 {
		t.Errorf("particle count = %d, want 1000", got)
	}
}

func TestIntroSceneResetKey(t *testing.T) {
	in := &fakeInput{w: 200, h: 100}
	s, keys := newTestIntro(t, in)
	s.Update(1.0 / 60)

	keys.frames = [][]utils.KeyEvent{
		{{Key: config.KeyCapsLock}},
		{{Key: config.KeyEscape}},
	}
	s.Update(1.0 / 60)
	if got := s.loop.Field().Text(); got != "안녕!" {
		t.Fatalf("text = %q, want 안녕!", got)
	}
	s.Update(1.0 / 60)
	if got := s.loop.Field().Text(); got != "Hello" {
		t.Errorf("text after reset = %q, want Hello", got)
	}
}

func TestIntroSceneIgnoresUnmappedKey(t *testing.T) {
	s, _ := newTestIntro(t, &fakeInput{})
	if s.HandleKey(utils.KeyEvent{Char: ' '}) {
		t.Error("space character without a key name should not map to a tier")
	}
	if s.HandleKey(utils.KeyEvent{}) {
		t.Error("empty key event should not map to a tier")
	}
}

func TestIntroSceneTeardownIsIdempotent(t *testing.T) {
	in := &fakeInput{w: 200, h: 100}
	s, _ := newTestIntro(t, in)
	s.Update(1.0 / 60)

	loop := s.loop
	s.Teardown()
	s.Teardown()
	if !loop.Destroyed() {
		t.Error("loop should be destroyed after Teardown")
	}
}

type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newTestSpeech(t *testing.T, reader *strings.Reader, c Completer) (*SpeechScene, *keyQueue) {
	t.Helper()
	in := &fakeInput{w: 200, h: 100}
	var s *SpeechScene
	var err error
	if reader == nil {
		s, err = NewSpeechScene(nil, nil, c, in, testSampler())
	} else {
		s, err = NewSpeechScene(nil, reader, c, in, testSampler())
	}
	if err != nil {
		t.Fatalf("NewSpeechScene error: %v", err)
	}
	keys := &keyQueue{}
	s.KeySource = keys.next
	t.Cleanup(s.Teardown)
	return s, keys
}

// updateUntil 推进帧直到 cond 成立或超时
func updateUntil(t *testing.T, s *SpeechScene, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for scene update")
		}
		s.Update(1.0 / 60)
		time.Sleep(time.Millisecond)
	}
}

func TestSpeechSceneShowsPlaceholder(t *testing.T) {
	s, _ := newTestSpeech(t, nil, nil)
	s.Update(1.0 / 60)

	if got := s.loop.Field().Text(); got != config.SpeechPlaceholder {
		t.Errorf("text = %q, want placeholder", got)
	}
	if got := s.loop.Field().Len(); got != 10000 {
		t.Errorf("particle count = %d, want 10000", got)
	}
}

func TestSpeechSceneReadsTranscriptFromReader(t *testing.T) {
	s, _ := newTestSpeech(t, strings.NewReader("  hello there \n"), nil)

	updateUntil(t, s, func() bool { return s.transcript != "" })
	if s.transcript != "hello there" {
		t.Errorf("transcript = %q, want %q", s.transcript, "hello there")
	}
	if got := s.loop.Field().Text(); got != "hello there" {
		t.Errorf("text = %q, want transcript", got)
	}
	if got := s.loop.Field().Len(); got != 10000 {
		t.Errorf("particle count = %d, text changes should keep the count", got)
	}
}

func TestSpeechSceneRequestsReply(t *testing.T) {
	c := &fakeCompleter{reply: "nice to meet you"}
	s, keys := newTestSpeech(t, nil, c)
	s.Update(1.0 / 60)

	s.SubmitTranscript("hi")
	updateUntil(t, s, func() bool { return s.reply != "" })

	if s.loading {
		t.Error("loading should be cleared after the reply arrives")
	}
	if got := s.DisplayText(); got != "hi" {
		t.Errorf("DisplayText = %q, transcript should win over reply", got)
	}
	c.mu.Lock()
	if len(c.prompts) != 1 || c.prompts[0] != "hi" {
		t.Errorf("prompts = %v, want [hi]", c.prompts)
	}
	c.mu.Unlock()

	keys.frames = [][]utils.KeyEvent{{{Key: config.KeyEscape}}}
	s.Update(1.0 / 60)
	if s.transcript != "" || s.reply != "" {
		t.Errorf("escape should clear transcript and reply, got %q / %q", s.transcript, s.reply)
	}
	s.Update(1.0 / 60)
	if got := s.loop.Field().Text(); got != config.SpeechPlaceholder {
		t.Errorf("text after reset = %q, want placeholder", got)
	}
}

func TestSpeechSceneCompletionError(t *testing.T) {
	c := &fakeCompleter{err: errors.New("boom")}
	s, _ := newTestSpeech(t, nil, c)
	s.Update(1.0 / 60)

	s.SubmitTranscript("hi")
	updateUntil(t, s, func() bool { return s.lastErr != nil })

	if s.loading {
		t.Error("loading should be cleared after an error")
	}
	if s.reply != "" {
		t.Errorf("reply = %q, want empty", s.reply)
	}
}

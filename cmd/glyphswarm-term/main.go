// glyphswarm-term 在终端中运行 intro 变体
//
// 每个字符单元对应 8x16 的虚拟像素，粒子落在哪个单元就点亮哪个单元。
// 鼠标移动产生斥力，按键切换档位，Ctrl+C 或 Ctrl+Q 退出。
//
// 用法：
//
//	go run ./cmd/glyphswarm-term [--tiers data/tiers.yaml] [--sound] [--verbose]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/game"
	"github.com/decker502/glyphswarm/pkg/render"
	"github.com/decker502/glyphswarm/pkg/swarm"
)

var (
	tiersFlag   = flag.String("tiers", "", "Path to a tier table YAML (default: built-in table)")
	soundFlag   = flag.Bool("sound", false, "Play a short chime on every tier change")
	fpsFlag     = flag.Int("fps", 30, "Frames per second")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging to glyphswarm-term.log")
)

// errQuit 用户请求退出
var errQuit = errors.New("quit requested")

// chimeRate 提示音采样率
const chimeRate = beep.SampleRate(44100)

// termKeyNames tcell 按键到逻辑按键名的映射
//
// 终端不会单独上报 Shift/Ctrl/Alt/CapsLock，这些档位只能在窗口版中触发。
var termKeyNames = map[tcell.Key]string{
	tcell.KeyEscape:     config.KeyEscape,
	tcell.KeyEnter:      config.KeyEnter,
	tcell.KeyBackspace:  config.KeyBackspace,
	tcell.KeyBackspace2: config.KeyBackspace,
	tcell.KeyDelete:     config.KeyDelete,
	tcell.KeyTab:        config.KeyTab,
}

// keyEvent 把 tcell 按键转换为 (逻辑按键名, 字符)
func keyEvent(ev *tcell.EventKey) (string, rune) {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return config.KeySpace, 0
		}
		return "", ev.Rune()
	}
	return termKeyNames[ev.Key()], 0
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.OpenFile("glyphswarm-term.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "glyphswarm-term: %v\n", err)
		os.Exit(1)
	}
}

func loadTiers() *config.TierTable {
	if *tiersFlag == "" {
		return config.DefaultTierTable()
	}
	tiers, err := config.LoadTierTable(*tiersFlag)
	if err != nil {
		log.Printf("Warning: %v (using built-in tier table)", err)
		return config.DefaultTierTable()
	}
	return tiers
}

func run() error {
	variant, err := config.GetVariant(config.VariantIntro)
	if err != nil {
		return err
	}
	tiers := loadTiers()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	chime := func() {}
	if *soundFlag {
		if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
			// 没有声音也能运行
			log.Printf("Audio initialization failed: %v", err)
		} else {
			chime = playChime
		}
	}

	input := &render.TerminalInput{}
	cols, rows := screen.Size()
	input.SetSize(cols, rows)

	w, h := input.Viewport()
	sampler := swarm.NewSampler(nil, swarm.DefaultMaxAttempts)
	loop, err := game.AcquireLoop(func() (*game.Loop, error) {
		return game.NewVariantLoop(variant, tiers.Default.Text, tiers.Default.Count, sampler, w, h)
	})
	if err != nil {
		screen.Fini()
		return err
	}
	defer loop.Destroy()

	g, ctx := errgroup.WithContext(context.Background())

	// 输入：鼠标、尺寸、按键
	g.Go(func() error {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				// screen 已关闭
				return nil
			case *tcell.EventResize:
				input.SetSize(ev.Size())
				screen.Sync()
			case *tcell.EventMouse:
				input.SetMouse(ev.Position())
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ {
					return errQuit
				}
				key, char := keyEvent(ev)
				tier, ok := tiers.Resolve(key, char)
				if tiers.IsReset(key) {
					tier, ok = tiers.Default, true
				}
				if ok && loop.SetTier(tier.Text, tier.Count) {
					log.Printf("key %q/%q -> %q (%d)", key, char, tier.Text, tier.Count)
					chime()
				}
			}
		}
	})

	// 帧循环；退出时关闭 screen 以结束 PollEvent
	g.Go(func() error {
		defer screen.Fini()

		fps := *fpsFlag
		if fps <= 0 {
			fps = 30
		}
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()

		r := render.NewTerminalRenderer(screen)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				r.Fill(variant.Background)
				loop.Frame(input, r)
				screen.Show()
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// playChime 播放一声短促的正弦提示音
func playChime() {
	sine, err := generators.SineTone(chimeRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chimeRate.N(60*time.Millisecond), sine))
}

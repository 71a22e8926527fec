package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen Init error: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestTerminalRendererFillCircle(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	r := NewTerminalRenderer(s)

	red := color.RGBA{172, 9, 60, 255}
	r.Fill(color.NRGBA{255, 255, 253, 20})
	// (20, 40) -> 列 2，行 2
	r.FillCircle(20, 40, 4, red)

	mainc, _, style, _ := s.GetContent(2, 2)
	if mainc != particleRune {
		t.Errorf("cell (2,2) = %q, want %q", mainc, particleRune)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(172, 9, 60) {
		t.Errorf("foreground = %v, want particle color", fg)
	}
	if bg != tcell.NewRGBColor(255, 255, 253) {
		t.Errorf("background = %v, want fill color", bg)
	}

	other, _, _, _ := s.GetContent(0, 0)
	if other != ' ' {
		t.Errorf("cell (0,0) = %q, want blank", other)
	}
}

func TestTerminalRendererIgnoresOffscreen(t *testing.T) {
	s := newSimScreen(t, 4, 2)
	r := NewTerminalRenderer(s)
	r.Fill(color.White)

	// 不应 panic
	r.FillCircle(-5, 3, 4, color.RGBA{A: 255})
	r.FillCircle(1000, 3, 4, color.RGBA{A: 255})
	r.FillCircle(3, 1000, 4, color.RGBA{A: 255})

	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			if c, _, _, _ := s.GetContent(col, row); c != ' ' {
				t.Errorf("cell (%d,%d) = %q, want blank", col, row, c)
			}
		}
	}
}

func TestTerminalInput(t *testing.T) {
	in := &TerminalInput{}

	if _, ok := in.Pointer(); ok {
		t.Error("pointer should be absent before any mouse event")
	}

	in.SetSize(80, 24)
	if w, h := in.Viewport(); w != 640 || h != 384 {
		t.Errorf("Viewport = %dx%d, want 640x384", w, h)
	}

	in.SetMouse(3, 1)
	p, ok := in.Pointer()
	if !ok {
		t.Fatal("pointer should be present after SetMouse")
	}
	if p.X != 28 || p.Y != 24 {
		t.Errorf("pointer = %+v, want (28, 24)", p)
	}
}

package glyph

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// TestFontScale 验证字号断点表只依赖字数
func TestFontScale(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{0, 0.8},
		{1, 0.8},
		{2, 0.8},
		{3, 0.6},
		{4, 0.6},
		{5, 0.4},
		{10, 0.4},
		{11, 0.3},
		{200, 0.3},
	}

	for _, tt := range tests {
		if got := FontScale(tt.length); got != tt.want {
			t.Errorf("FontScale(%d) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		w, h   int
		style  Style
		expect float64
	}{
		{"short text uses 0.8", "Hi", 800, 600, DefaultStyle(), 600 * 0.6 * 0.8},
		{"hangul counted by grapheme", "안녕!", 800, 600, DefaultStyle(), 600 * 0.6 * 0.6},
		{"sentence uses 0.3", "Hello there, world", 1000, 500, DefaultStyle(), 500 * 0.6 * 0.3},
		{"fixed scale overrides table", "Hello there, world", 800, 600, Style{FixedScale: 1}, 600 * 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FontSize(tt.text, tt.w, tt.h, tt.style)
			if diff := got - tt.expect; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("FontSize(%q) = %v, want %v", tt.text, got, tt.expect)
			}
		})
	}
}

func TestTextLength(t *testing.T) {
	if got := TextLength("안녕!"); got != 3 {
		t.Errorf("TextLength(안녕!) = %d, want 3", got)
	}
	if got := TextLength(""); got != 0 {
		t.Errorf("TextLength(\"\") = %d, want 0", got)
	}
}

func TestRasterizeZeroCanvas(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	for _, size := range [][2]int{{0, 600}, {800, 0}, {-1, -1}} {
		m, err := r.Rasterize("Hi", size[0], size[1], DefaultStyle())
		if !errors.Is(err, ErrEmptyCanvas) {
			t.Errorf("Rasterize(%dx%d) error = %v, want ErrEmptyCanvas", size[0], size[1], err)
		}
		if m != nil {
			t.Errorf("Rasterize(%dx%d) returned non-nil mask", size[0], size[1])
		}
	}
}

func TestRasterizeProducesCenteredInk(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	m, err := r.Rasterize("Hi", 800, 600, DefaultStyle())
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}

	if m.Width != 800 || m.Height != 600 {
		t.Fatalf("mask size = %dx%d, want 800x600", m.Width, m.Height)
	}
	if m.Text != "Hi" {
		t.Errorf("mask text = %q, want Hi", m.Text)
	}
	if m.InkCount() == 0 {
		t.Fatal("expected ink pixels for \"Hi\"")
	}

	// 墨迹的包围盒应大致以画布中心为中心
	minX, minY, maxX, maxY := m.Width, m.Height, -1, -1
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.IsInk(x, y) {
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			}
		}
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	if cx < 300 || cx > 500 {
		t.Errorf("ink center x = %d, want near 400", cx)
	}
	if cy < 200 || cy > 400 {
		t.Errorf("ink center y = %d, want near 300", cy)
	}
}

func TestRasterizeEmptyTextHasNoInk(t *testing.T) {
	r, _ := Default()
	for _, text := range []string{"", "   "} {
		m, err := r.Rasterize(text, 200, 100, DefaultStyle())
		if err != nil {
			t.Fatalf("Rasterize(%q) error: %v", text, err)
		}
		if n := m.InkCount(); n != 0 {
			t.Errorf("Rasterize(%q) ink count = %d, want 0", text, n)
		}
	}
}

func TestRasterizeIsDeterministic(t *testing.T) {
	r, _ := Default()
	a, _ := r.Rasterize("Hello", 400, 300, DefaultStyle())
	b, _ := r.Rasterize("Hello", 400, 300, DefaultStyle())
	if !a.Equal(b) {
		t.Error("rasterizing the same text twice should give equal masks")
	}

	c, _ := r.Rasterize("Hello", 401, 300, DefaultStyle())
	if a.Equal(c) {
		t.Error("masks of different size should not be equal")
	}
}

func TestMaskBounds(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(1, 2, color.Gray{Y: 10})
	img.SetGray(2, 2, color.Gray{Y: InkThreshold})

	m := NewMaskFromGray(img)

	if !m.IsInk(1, 2) {
		t.Error("IsInk(1, 2) = false, want true")
	}
	if m.IsInk(2, 2) {
		t.Error("brightness equal to threshold should not count as ink")
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if m.IsInk(p[0], p[1]) {
			t.Errorf("IsInk(%d, %d) out of bounds should be false", p[0], p[1])
		}
	}
	if m.InkCount() != 1 {
		t.Errorf("InkCount = %d, want 1", m.InkCount())
	}

	var nilMask *Mask
	if nilMask.IsInk(0, 0) || !nilMask.Empty() {
		t.Error("nil mask should be empty and have no ink")
	}
}

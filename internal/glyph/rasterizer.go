package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyCanvas 画布宽或高不大于 0（例如窗口最小化、销毁过程中）
var ErrEmptyCanvas = errors.New("glyph: canvas has no area")

// BaseSizeRatio 基准字号 = BaseSizeRatio × min(宽, 高)
const BaseSizeRatio = 0.6

// Style 栅格化样式参数
type Style struct {
	// CenterY 文字垂直中心位于画布高度的比例（0.5 = 正中）
	CenterY float64
	// FixedScale 大于 0 时忽略字数断点表，固定使用该缩放系数
	FixedScale float64
}

// DefaultStyle 默认样式：正中，按字数选择字号
func DefaultStyle() Style {
	return Style{CenterY: 0.5}
}

// FontScale 根据字数返回字号缩放系数
//
// 断点表：
//   - ≤2 字: 0.8
//   - ≤4 字: 0.6
//   - ≤10 字: 0.4
//   - 其他: 0.3
func FontScale(length int) float64 {
	switch {
	case length <= 2:
		return 0.8
	case length <= 4:
		return 0.6
	case length <= 10:
		return 0.4
	default:
		return 0.3
	}
}

// TextLength 按字素簇计算文字长度（"안녕!" 为 3）
func TextLength(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// FontSize 计算给定画布与文字对应的字号（像素）
func FontSize(text string, width, height int, style Style) float64 {
	base := BaseSizeRatio * float64(min(width, height))
	scale := style.FixedScale
	if scale <= 0 {
		scale = FontScale(TextLength(text))
	}
	return base * scale
}

// Rasterizer 持有已解析的字体，负责把文字绘制成 Mask
type Rasterizer struct {
	font *opentype.Font
}

// NewRasterizer 从 TTF/OTF 字体数据创建栅格化器
func NewRasterizer(fontData []byte) (*Rasterizer, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Rasterizer{font: f}, nil
}

var (
	defaultOnce       sync.Once
	defaultRasterizer *Rasterizer
	defaultErr        error
)

// Default 返回使用内置 Go Bold 字体的共享栅格化器
func Default() (*Rasterizer, error) {
	defaultOnce.Do(func() {
		defaultRasterizer, defaultErr = NewRasterizer(gobold.TTF)
	})
	return defaultRasterizer, defaultErr
}

// Rasterize 将文字居中绘制到 width×height 的白色画布上（黑字）
//
// 宽或高不大于 0 时返回 ErrEmptyCanvas。
// 空文字得到一张全白（无墨迹）的 Mask。
func (r *Rasterizer) Rasterize(text string, width, height int, style Style) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyCanvas
	}
	if style.CenterY <= 0 {
		style.CenterY = 0.5
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	size := FontSize(text, width, height, style)
	if text != "" && size > 0 {
		face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create font face (size %.1f): %w", size, err)
		}
		defer face.Close()

		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: face,
		}

		// 水平居中：按前进宽度；垂直居中：基线 = 中心 + (ascent - descent) / 2
		advance := d.MeasureString(text)
		metrics := face.Metrics()
		x := (fixed.I(width) - advance) / 2
		centerY := fixed.Int26_6(math.Round(style.CenterY * float64(height) * 64))
		y := centerY + (metrics.Ascent-metrics.Descent)/2
		d.Dot = fixed.Point26_6{X: x, Y: y}
		d.DrawString(text)
	}

	m := NewMaskFromGray(img)
	m.Text = text
	m.FontSize = size
	return m, nil
}

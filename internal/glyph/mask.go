// Package glyph 将目标文字栅格化为离屏灰度位图，并提供逐像素的"墨迹"判定
//
// 栅格化完全在 CPU 上完成（golang.org/x/image/font/opentype），
// 不依赖 Ebitengine 的 GPU 图像，因此可以在测试和终端前端中直接使用。
package glyph

import (
	"image"
)

// InkThreshold 墨迹亮度阈值（0~255），亮度低于此值的像素视为墨迹
const InkThreshold = 100

// Mask 文字栅格化后的亮度位图
//
// 每次文字变化时重新创建，创建后不可变。
type Mask struct {
	Width    int
	Height   int
	Text     string  // 栅格化的文字
	FontSize float64 // 实际使用的字号（像素）

	pix []uint8 // 行优先的亮度数据，0 = 黑（墨迹），255 = 白（背景）
}

// NewMaskFromGray 从灰度图像构建 Mask
// 主要用于测试和自定义形状
func NewMaskFromGray(img *image.Gray) *Mask {
	b := img.Bounds()
	m := &Mask{
		Width:  b.Dx(),
		Height: b.Dy(),
		pix:    make([]uint8, b.Dx()*b.Dy()),
	}
	for y := 0; y < m.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(m.pix[y*m.Width:(y+1)*m.Width], img.Pix[off:off+m.Width])
	}
	return m
}

// Brightness 返回 (x, y) 处的亮度
// 越界坐标视为背景（255）
func (m *Mask) Brightness(x, y int) uint8 {
	if m == nil || x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 255
	}
	return m.pix[y*m.Width+x]
}

// IsInk 判断 (x, y) 是否位于字形笔画内
func (m *Mask) IsInk(x, y int) bool {
	return m.Brightness(x, y) < InkThreshold
}

// InkCount 返回墨迹像素总数
func (m *Mask) InkCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, v := range m.pix {
		if v < InkThreshold {
			n++
		}
	}
	return n
}

// Empty 是否没有可放置的区域（nil、零尺寸）
func (m *Mask) Empty() bool {
	return m == nil || m.Width <= 0 || m.Height <= 0
}

// Equal 比较两个 Mask 的尺寸和像素数据是否完全一致
func (m *Mask) Equal(other *Mask) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

package render

import (
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/glyphswarm/pkg/swarm"
)

// 终端单元格对应的虚拟像素尺寸（字符约为 1:2 的宽高比）
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// particleRune 终端中表示粒子的字符
const particleRune = '●'

// TerminalRenderer 将粒子绘制到 tcell 屏幕
//
// 粒子场在虚拟像素坐标中运行（列数×CellWidth, 行数×CellHeight），
// 绘制时换算到单元格。
type TerminalRenderer struct {
	screen tcell.Screen
}

var _ swarm.Renderer = (*TerminalRenderer)(nil)

// NewTerminalRenderer 创建终端渲染器
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// Fill 清空屏幕
// 终端无法混合颜色，半透明背景也按完全覆盖处理
func (r *TerminalRenderer) Fill(c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	style := tcell.StyleDefault.Background(tcellColor(color.NRGBA{nc.R, nc.G, nc.B, 255}))
	r.screen.Fill(' ', style)
}

// FillCircle 在粒子所在单元格绘制一个彩色圆点
// 超出屏幕的粒子被忽略
func (r *TerminalRenderer) FillCircle(x, y, radius float64, c color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	col, row := int(x/CellWidth), int(y/CellHeight)
	w, h := r.screen.Size()
	if col >= w || row >= h {
		return
	}
	_, _, style, _ := r.screen.GetContent(col, row)
	r.screen.SetContent(col, row, particleRune, nil, style.Foreground(tcellColor(c)))
}

// TerminalInput 终端输入源
//
// 事件 goroutine 写入鼠标位置与屏幕尺寸，帧循环读取；两者通过互斥锁同步。
type TerminalInput struct {
	mu         sync.Mutex
	pointer    swarm.Vec2
	hasPointer bool
	cols, rows int
}

var _ swarm.InputSource = (*TerminalInput)(nil)

// SetMouse 记录鼠标所在单元格，换算为单元格中心的虚拟像素坐标
func (in *TerminalInput) SetMouse(col, row int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.pointer = swarm.Vec2{
		X: (float64(col) + 0.5) * CellWidth,
		Y: (float64(row) + 0.5) * CellHeight,
	}
	in.hasPointer = true
}

// SetSize 记录终端尺寸（单元格）
func (in *TerminalInput) SetSize(cols, rows int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.cols, in.rows = cols, rows
}

// Pointer 返回最近一次鼠标位置；尚未收到鼠标事件时 ok 为 false
func (in *TerminalInput) Pointer() (swarm.Vec2, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pointer, in.hasPointer
}

// Viewport 返回虚拟像素尺寸
func (in *TerminalInput) Viewport() (int, int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return int(float64(in.cols) * CellWidth), int(float64(in.rows) * CellHeight)
}

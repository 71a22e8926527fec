// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/swarm"
)

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// PointerInput 基于 Ebitengine 的输入源
//
// 视口尺寸由 ebiten.Game.Layout 写入，指针位置每帧实时读取。
type PointerInput struct {
	width, height int
}

var _ swarm.InputSource = (*PointerInput)(nil)

// SetViewport 记录 Layout 给出的画布尺寸
func (in *PointerInput) SetViewport(width, height int) {
	in.width, in.height = width, height
}

// Viewport 返回画布尺寸
func (in *PointerInput) Viewport() (int, int) {
	return in.width, in.height
}

// Pointer 返回指针位置
// 与浏览器一致，指针移出窗口后仍使用最后的位置
func (in *PointerInput) Pointer() (swarm.Vec2, bool) {
	x, y := GetPointerPosition()
	return swarm.Vec2{X: float64(x), Y: float64(y)}, true
}

// KeyEvent 一次按键输入
// Key 为逻辑按键名（特殊键），Char 为字符键产生的字符，二者只有一个非零
type KeyEvent struct {
	Key  string
	Char rune
}

// keyNames Ebitengine 按键到逻辑按键名的映射
var keyNames = map[ebiten.Key]string{
	ebiten.KeyEscape:       config.KeyEscape,
	ebiten.KeyEnter:        config.KeyEnter,
	ebiten.KeyNumpadEnter:  config.KeyEnter,
	ebiten.KeyShiftLeft:    config.KeyShift,
	ebiten.KeyShiftRight:   config.KeyShift,
	ebiten.KeyControlLeft:  config.KeyControl,
	ebiten.KeyControlRight: config.KeyControl,
	ebiten.KeyAltLeft:      config.KeyAlt,
	ebiten.KeyAltRight:     config.KeyAlt,
	ebiten.KeyBackspace:    config.KeyBackspace,
	ebiten.KeyDelete:       config.KeyDelete,
	ebiten.KeyCapsLock:     config.KeyCapsLock,
	ebiten.KeyTab:          config.KeyTab,
	ebiten.KeySpace:        config.KeySpace,
}

// KeyName 返回 Ebitengine 按键对应的逻辑按键名，非特殊键返回空字符串
func KeyName(k ebiten.Key) string {
	return keyNames[k]
}

// AppendKeyEvents 收集本帧的按键输入：先特殊键，再输入字符
// 空白字符已由对应的特殊键表示，不再重复
func AppendKeyEvents(events []KeyEvent) []KeyEvent {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if name := KeyName(k); name != "" {
			events = append(events, KeyEvent{Key: name})
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		events = append(events, KeyEvent{Char: r})
	}
	return events
}

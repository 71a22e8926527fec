package game

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/decker502/glyphswarm/internal/glyph"
	"github.com/decker502/glyphswarm/pkg/config"
	"github.com/decker502/glyphswarm/pkg/swarm"
)

// EventKind 输入事件类型
type EventKind int

const (
	// EventText 仅替换显示文字（粒子数不变）
	EventText EventKind = iota
	// EventTier 替换文字与粒子数
	EventTier
	// EventResize 视口尺寸变化
	EventResize
)

// Event 在帧与帧之间应用的输入事件
type Event struct {
	Kind   EventKind
	Text   string
	Count  int
	Width  int
	Height int
}

// eventQueueSize 事件队列容量，队列满时新事件被丢弃
const eventQueueSize = 64

// Loop 动画循环：每帧先应用排队的输入事件，再更新并绘制粒子场
//
// 帧内的操作都是同步的。Post 可以在任意 goroutine 中调用，
// 事件只会在下一帧开始时被应用，不会与绘制交错。
type Loop struct {
	field  *swarm.Field
	events chan Event

	destroyed atomic.Bool
	width     int
	height    int
}

// NewLoop 创建动画循环
func NewLoop(field *swarm.Field) *Loop {
	w, h := field.Viewport()
	return &Loop{
		field:  field,
		events: make(chan Event, eventQueueSize),
		width:  w,
		height: h,
	}
}

// NewVariantLoop 按变体参数构建粒子场与动画循环
//
// text/count 为初始档位，width/height 为当前视口尺寸。
func NewVariantLoop(v config.VariantConfig, text string, count int, sampler *swarm.Sampler, width, height int) (*Loop, error) {
	rasterizer, err := glyph.Default()
	if err != nil {
		return nil, err
	}
	motion := swarm.DefaultMotion()
	motion.RepulsionRadius = v.RepulsionRadius

	field, err := swarm.NewField(swarm.FieldConfig{
		Count:          count,
		Text:           text,
		SizeMin:        v.SizeMin,
		SizeMax:        v.SizeMax,
		Motion:         motion,
		Style:          glyph.Style{CenterY: v.TextCenterY},
		ScatterOnBuild: v.ScatterOnBuild,
	}, rasterizer, sampler, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to build particle field: %w", err)
	}
	return NewLoop(field), nil
}

// Post 投递事件；循环已销毁或队列已满时丢弃并返回 false
func (l *Loop) Post(ev Event) bool {
	if l.destroyed.Load() {
		return false
	}
	select {
	case l.events <- ev:
		return true
	default:
		log.Printf("[Loop] Warning: event queue full, dropping event kind=%d", ev.Kind)
		return false
	}
}

// SetText 投递文字变化事件
func (l *Loop) SetText(text string) bool {
	return l.Post(Event{Kind: EventText, Text: text})
}

// SetTier 投递档位变化事件
func (l *Loop) SetTier(text string, count int) bool {
	return l.Post(Event{Kind: EventTier, Text: text, Count: count})
}

// drainEvents 应用队列中的全部事件
//
// 同一帧内只接受第一个档位变化，其余档位事件被忽略（防止连按）。
func (l *Loop) drainEvents() {
	tierApplied := false
	for {
		select {
		case ev := <-l.events:
			switch ev.Kind {
			case EventTier:
				if tierApplied {
					log.Printf("[Loop] ignoring tier change %q while another is applied this frame", ev.Text)
					continue
				}
				tierApplied = true
				l.apply(ev)
			default:
				l.apply(ev)
			}
		default:
			return
		}
	}
}

func (l *Loop) apply(ev Event) {
	var err error
	switch ev.Kind {
	case EventText:
		err = l.field.Retarget(ev.Text)
	case EventTier:
		err = l.field.SetTier(ev.Text, ev.Count)
	case EventResize:
		l.width, l.height = ev.Width, ev.Height
		err = l.field.Resize(ev.Width, ev.Height)
	}
	if err != nil {
		// 栅格化失败不应中断动画，保留旧目标点
		log.Printf("[Loop] Warning: failed to apply event kind=%d: %v", ev.Kind, err)
	}
}

// prepare 应用事件并检测视口变化，返回本帧的指针位置
// 循环已销毁时 live 为 false
func (l *Loop) prepare(input swarm.InputSource) (pointer swarm.Vec2, hasPointer, live bool) {
	if l.destroyed.Load() {
		return swarm.Vec2{}, false, false
	}

	l.drainEvents()

	if w, h := input.Viewport(); w != l.width || h != l.height {
		log.Printf("[Loop] viewport %dx%d -> %dx%d", l.width, l.height, w, h)
		l.apply(Event{Kind: EventResize, Width: w, Height: h})
	}

	pointer, hasPointer = input.Pointer()
	return pointer, hasPointer, true
}

// Tick 推进一帧的逻辑：应用事件、检测视口变化、更新粒子
// ebiten 的 Update/Draw 分离，绘制交给 Draw
func (l *Loop) Tick(input swarm.InputSource) {
	if pointer, ok, live := l.prepare(input); live {
		l.field.Update(pointer, ok)
	}
}

// Draw 绘制当前帧
func (l *Loop) Draw(r swarm.Renderer) {
	if l.destroyed.Load() {
		return
	}
	l.field.Draw(r)
}

// Frame 一帧内完成事件、更新与绘制，粒子逐个移动并绘制
func (l *Loop) Frame(input swarm.InputSource, r swarm.Renderer) {
	if pointer, ok, live := l.prepare(input); live {
		l.field.Step(pointer, ok, r)
	}
}

// Field 返回粒子场
func (l *Loop) Field() *swarm.Field {
	return l.field
}

// Destroyed 是否已销毁
func (l *Loop) Destroyed() bool {
	return l.destroyed.Load()
}

// Destroy 停止循环并释放进程级句柄
// 可重复调用，第二次起不做任何事
func (l *Loop) Destroy() {
	if !l.destroyed.CompareAndSwap(false, true) {
		return
	}

	activeMu.Lock()
	if active == l {
		active = nil
	}
	activeMu.Unlock()

	// 丢弃尚未应用的事件
	for {
		select {
		case <-l.events:
		default:
			log.Printf("[Loop] destroyed")
			return
		}
	}
}

// 进程级动画循环句柄：同一时刻最多存在一个活动的 Loop
var (
	activeMu sync.Mutex
	active   *Loop
)

// AcquireLoop 返回当前活动的 Loop；不存在时调用 create 创建
//
// 销毁与重新创建交错时，只会得到一个活动实例。
func AcquireLoop(create func() (*Loop, error)) (*Loop, error) {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active != nil && !active.Destroyed() {
		return active, nil
	}

	l, err := create()
	if err != nil {
		return nil, fmt.Errorf("failed to create animation loop: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("animation loop factory returned nil")
	}
	active = l
	return l, nil
}

// ActiveLoop 返回当前活动的 Loop，没有时返回 nil
func ActiveLoop() *Loop {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

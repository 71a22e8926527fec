package swarm

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/glyphswarm/internal/glyph"
)

const (
	// GridPitch 目标点网格间距（像素）
	GridPitch = 10.0
	// DefaultMaxAttempts 拒绝采样的最大尝试次数
	DefaultMaxAttempts = 50
)

// Sampler 在 Mask 的墨迹区域内随机挑选粒子目标点
//
// 使用有上限的拒绝采样：在画布内均匀抽点，命中墨迹即接受。
// 超过尝试次数仍未命中时（例如空白文字），回退到画布中心，保证不会死循环。
type Sampler struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewSampler 创建采样器
//
// 参数：
//   - rng: 随机源，传入固定种子的 rand.Rand 可获得确定性结果；nil 使用全局随机源
//   - maxAttempts: 最大尝试次数，不大于 0 时使用 DefaultMaxAttempts
func NewSampler(rng *rand.Rand, maxAttempts int) *Sampler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Sampler{rng: rng, maxAttempts: maxAttempts}
}

func (s *Sampler) float64() float64 {
	if s.rng == nil {
		return rand.Float64()
	}
	return s.rng.Float64()
}

// Sample 返回一个对齐到网格中心的目标点
//
// 返回：
//   - x, y: 目标点坐标
//   - hit: 是否命中墨迹；false 表示使用了回退坐标
//
// mask 为空（nil 或零尺寸）时返回 (0, 0, false)。
func (s *Sampler) Sample(mask *glyph.Mask) (x, y float64, hit bool) {
	if mask.Empty() {
		return 0, 0, false
	}

	w, h := float64(mask.Width), float64(mask.Height)
	for i := 0; i < s.maxAttempts; i++ {
		// 判定点与返回点一致：吸附后的单元中心必须是墨迹
		x, y = Snap(s.float64()*w), Snap(s.float64()*h)
		if mask.IsInk(int(x), int(y)) {
			return x, y, true
		}
	}

	// 回退：画布中心
	return Snap(w / 2), Snap(h / 2), false
}

// Random 返回画布内均匀分布的随机点（用于初始散布）
func (s *Sampler) Random(width, height int) Vec2 {
	return Vec2{s.float64() * float64(width), s.float64() * float64(height)}
}

// Float 返回 [lo, hi) 区间内的随机数
func (s *Sampler) Float(lo, hi float64) float64 {
	return lo + s.float64()*(hi-lo)
}

// IntN 返回 [0, n) 区间内的随机整数
func (s *Sampler) IntN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// Snap 将坐标对齐到所在网格单元的中心
func Snap(v float64) float64 {
	return math.Floor(v/GridPitch)*GridPitch + GridPitch/2
}

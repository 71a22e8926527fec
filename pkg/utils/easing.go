package utils

import "math"

// EaseOutCubic 三次方缓出，t 超出 [0, 1] 时先截断
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}

// FadeIn 返回 elapsed 秒时的不透明度（0 到 1），duration 秒内缓出到 1
// duration 不大于 0 时直接返回 1
func FadeIn(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return EaseOutCubic(elapsed / duration)
}

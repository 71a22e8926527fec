package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureFunc 返回一行文字的宽度（像素）
type MeasureFunc func(line string) float64

// FaceMeasure 用字体测量文字宽度；face 为 nil 时按每个字符 1 像素计算
func FaceMeasure(face text.Face) MeasureFunc {
	if face == nil {
		return func(line string) float64 { return float64(len([]rune(line))) }
	}
	return func(line string) float64 {
		w, _ := text.Measure(line, face, 0)
		return w
	}
}

// WrapText 将文本按指定宽度自动换行
//
// 换行规则:
//   - 保留原有的换行符
//   - 优先在空格处断行
//   - 单个词超过最大宽度时按字符强制断行（适用于没有空格的中日韩文字）
//
// 空文本返回 nil。
func WrapText(textStr string, maxWidth float64, measure MeasureFunc) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(textStr), "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if maxWidth <= 0 || measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = word
			// 强制断开过长的词
			for measure(line) > maxWidth {
				head, rest := splitAtWidth(line, maxWidth, measure)
				lines = append(lines, head)
				line = rest
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitAtWidth 返回不超过 maxWidth 的最长前缀（至少一个字符）和剩余部分
func splitAtWidth(s string, maxWidth float64, measure MeasureFunc) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && measure(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// Package textsource 把外部异步文字（转写文本）送入动画循环
//
// 桌面端没有浏览器语音识别，这里用逐行输入代替：每读到一行即视为一次转写结果。
package textsource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Transcript 一次转写结果
type Transcript struct {
	Text string
}

// ReadLines 逐行读取 r，把去除首尾空白后的每一行发送给 handle
//
// 遇到 EOF 时返回 nil；ctx 取消时返回 ctx.Err()。
// handle 在读取 goroutine 中被调用，不能阻塞太久。
func ReadLines(ctx context.Context, r io.Reader, handle func(Transcript)) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- fmt.Errorf("failed to read transcript: %w", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			handle(Transcript{Text: strings.TrimSpace(line)})
		}
	}
}

// DisplayText 选择要显示的文字：转写优先，其次模型回复，最后占位文字
func DisplayText(transcript, reply, placeholder string) string {
	switch {
	case transcript != "":
		return transcript
	case reply != "":
		return reply
	default:
		return placeholder
	}
}

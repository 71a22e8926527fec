//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 1 时在桌面端模拟移动模式（触摸输入、仅 intro 变体）
const MobileEmulateEnv = "GLYPHSWARM_MOBILE_EMULATE"

// IsMobile 是否以移动模式运行
// 桌面端编译时仅在设置了 MobileEmulateEnv 时返回 true
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}

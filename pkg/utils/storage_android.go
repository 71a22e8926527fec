//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开前创建 /data/data/{package}/saves
//
// gdata 在 Android 上不会预先创建子目录，目录不可写时设置无法保存。
func EnsureStorageDir() error {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}
	// cmdline 以 NUL 分隔，第一段即包名
	pkg := string(bytes.TrimSpace(bytes.SplitN(cmdline, []byte{0}, 2)[0]))
	if pkg == "" {
		return fmt.Errorf("failed to detect Android package: empty cmdline")
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return nil
}

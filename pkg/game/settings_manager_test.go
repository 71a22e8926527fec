package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/glyphswarm/pkg/config"
)

// openTestStorage 在临时 HOME 下打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.WindowWidth != config.DefaultWindowWidth || settings.WindowHeight != config.DefaultWindowHeight {
		t.Errorf("window size: got %dx%d", settings.WindowWidth, settings.WindowHeight)
	}
	if settings.Variant != config.VariantIntro {
		t.Errorf("Variant: got %q, want intro", settings.Variant)
	}
	if settings.LastCount != 0 {
		t.Errorf("LastCount: got %d, want 0", settings.LastCount)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetLastTier("Del", 1800)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsLoadSave 测试 Save() 后重新创建的管理器能读到相同设置
func TestSettingsLoadSave(t *testing.T) {
	storage := openTestStorage(t, "test_glyphswarm_settings")

	sm1 := NewSettingsManager(storage)
	sm1.SetFullscreen(true)
	sm1.SetWindowSize(1024, 768)
	sm1.SetVariant(config.VariantSpeech)
	sm1.SetLastTier("안녕!", 3800)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(storage)
	got := sm2.GetSettings()

	if !got.Fullscreen {
		t.Error("Fullscreen not persisted")
	}
	if got.WindowWidth != 1024 || got.WindowHeight != 768 {
		t.Errorf("window size: got %dx%d, want 1024x768", got.WindowWidth, got.WindowHeight)
	}
	if got.Variant != config.VariantSpeech {
		t.Errorf("Variant: got %q, want speech", got.Variant)
	}
	tier, ok := sm2.LastTier()
	if !ok || tier.Text != "안녕!" || tier.Count != 3800 {
		t.Errorf("LastTier: got %+v, %v", tier, ok)
	}
}

func TestSetWindowSizeIgnoresInvalid(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetWindowSize(0, 500)
	sm.SetWindowSize(-1, -1)

	s := sm.GetSettings()
	if s.WindowWidth != config.DefaultWindowWidth || s.WindowHeight != config.DefaultWindowHeight {
		t.Errorf("invalid sizes should be ignored, got %dx%d", s.WindowWidth, s.WindowHeight)
	}
}

func TestLastTierUnset(t *testing.T) {
	sm := NewSettingsManager(nil)
	if _, ok := sm.LastTier(); ok {
		t.Error("LastTier() should report ok=false before any tier is recorded")
	}
}

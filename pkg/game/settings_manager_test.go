package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}

	if settings.MusicVolume != 0.7 {
		t.Errorf("MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.MusicEnabled {
		t.Error("MusicEnabled: got false, want true")
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// newTestGdataManager 在临时目录中创建 gdata 管理器
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	gdataManager := newTestGdataManager(t, "test_settings")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	// 验证初始化后使用默认设置
	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}
	if settings.MusicVolume != 0.7 {
		t.Errorf("Initial MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}

	// 验证使用默认设置
	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if settings.MusicVolume != 0.7 {
		t.Errorf("Degraded mode MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}

	// 降级模式下 Save 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 的往返一致性
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdataManager(t, "test_settings_load_save")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	// 修改全部字段并保存
	sm.SetMusicVolume(0.3)
	sm.SetSoundVolume(0.9)
	sm.SetMusicEnabled(false)
	sm.SetSoundEnabled(false)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 新建管理器，验证读回的设置与保存的一致
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() (reload) error: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.MusicVolume != 0.3 {
		t.Errorf("Reloaded MusicVolume: got %v, want 0.3", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.9 {
		t.Errorf("Reloaded SoundVolume: got %v, want 0.9", settings.SoundVolume)
	}
	if settings.MusicEnabled {
		t.Error("Reloaded MusicEnabled: got true, want false")
	}
	if settings.SoundEnabled {
		t.Error("Reloaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Reloaded Fullscreen: got false, want true")
	}
}

// TestVolumeClamping 测试音量设置的范围限制
func TestVolumeClamping(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"负数被钳制为0", -0.5, 0.0},
		{"零", 0.0, 0.0},
		{"正常值", 0.42, 0.42},
		{"一", 1.0, 1.0},
		{"超过1被钳制为1", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetMusicVolume(tt.input)
			if got := sm.GetSettings().MusicVolume; got != tt.want {
				t.Errorf("SetMusicVolume(%v): got %v, want %v", tt.input, got, tt.want)
			}

			sm.SetSoundVolume(tt.input)
			if got := sm.GetSettings().SoundVolume; got != tt.want {
				t.Errorf("SetSoundVolume(%v): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

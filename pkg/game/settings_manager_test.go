package game

import (
	"math"
	"testing"

	"github.com/decker502/tearoom/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("cannot create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.HasCamera() {
		t.Error("default settings should not carry a camera pose")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.LastVariant != "" {
		t.Errorf("LastVariant: got %q, want empty", settings.LastVariant)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode: %v", err)
	}
	if sm.GetSettings().Fullscreen {
		t.Error("degraded Load should reset to defaults")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	manager := openTestGdata(t, "tearoom_settings_test")

	sm1 := NewSettingsManager(manager)
	sm1.SetCamera(0.75, 1.1, 8.5)
	sm1.SetFullscreen(true)
	sm1.SetLastVariant("shared-gate")
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	settings := NewSettingsManager(manager).GetSettings()
	if !settings.HasCamera() {
		t.Fatal("camera pose not restored")
	}
	if settings.CameraAzimuth != 0.75 || settings.CameraPolar != 1.1 || settings.CameraDistance != 8.5 {
		t.Errorf("camera = (%v, %v, %v), want (0.75, 1.1, 8.5)",
			settings.CameraAzimuth, settings.CameraPolar, settings.CameraDistance)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.LastVariant != "shared-gate" {
		t.Errorf("Loaded LastVariant: got %q", settings.LastVariant)
	}
}

// TestSettingsLoadCorrupted 损坏的数据回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	manager := openTestGdata(t, "tearoom_settings_corrupt")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("cameraPolar: [not a number")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(manager)
	if sm.GetSettings().HasCamera() {
		t.Error("corrupted settings should fall back to defaults")
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSetCameraClamp 测试 SetCamera 范围校验
func TestSetCameraClamp(t *testing.T) {
	tests := []struct {
		name                     string
		azimuth, polar, distance float64
		wantA, wantP, wantD      float64
	}{
		{"in range", 1, 1, 10, 1, 1, 10},
		{"polar too low", 0, 0.01, 10, 0, config.CameraMinPolar, 10},
		{"polar too high", 0, 3, 10, 0, config.CameraMaxPolar, 10},
		{"too close", 0, 1, 0.1, 0, 1, config.CameraMinDistance},
		{"too far", 0, 1, 99, 0, 1, config.CameraMaxDistance},
		{"azimuth wraps", 2*math.Pi + 0.5, 1, 10, 0.5, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSettingsManager(nil)
			sm.SetCamera(tt.azimuth, tt.polar, tt.distance)
			s := sm.GetSettings()
			if math.Abs(s.CameraAzimuth-tt.wantA) > 1e-12 || s.CameraPolar != tt.wantP || s.CameraDistance != tt.wantD {
				t.Errorf("SetCamera = (%v, %v, %v), want (%v, %v, %v)",
					s.CameraAzimuth, s.CameraPolar, s.CameraDistance, tt.wantA, tt.wantP, tt.wantD)
			}
		})
	}
}

// TestSetCameraIgnoresNonFinite 非有限值不覆盖已有设置
func TestSetCameraIgnoresNonFinite(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetCamera(0.5, 1, 9)
	sm.SetCamera(math.NaN(), 1, 9)
	sm.SetCamera(0.5, 1, math.Inf(1))

	s := sm.GetSettings()
	if s.CameraAzimuth != 0.5 || s.CameraDistance != 9 {
		t.Errorf("non-finite input changed settings: %+v", s)
	}
}

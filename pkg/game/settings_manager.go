package game

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 观察者设置
// 只保存与显示相关的偏好，场景本身每次启动都重新构建
type ViewerSettings struct {
	// 相机轨道参数
	CameraAzimuth  float64 `yaml:"cameraAzimuth"`  // 方位角（弧度）
	CameraPolar    float64 `yaml:"cameraPolar"`    // 俯仰角（弧度，从 +Y 量起）
	CameraDistance float64 `yaml:"cameraDistance"` // 相机到目标的距离

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏

	// LastVariant 上次浏览的场景变体，空表示默认变体
	LastVariant string `yaml:"lastVariant"`
}

// DefaultSettings 返回默认设置
// 相机参数为 0 表示沿用场景默认视角
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{}
}

// HasCamera 是否保存过有效的相机参数
func (s *ViewerSettings) HasCamera() bool {
	return s.CameraDistance > 0 && !math.IsNaN(s.CameraPolar) && !math.IsNaN(s.CameraAzimuth)
}

// SettingsManager 设置管理器
// 负责观察者设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetCamera 记录相机轨道参数
//
// 俯仰角和距离会被限制到相机允许的范围，非有限值被忽略
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetCamera(azimuth, polar, distance float64) {
	sum := azimuth + polar + distance
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return
	}
	sm.settings.CameraAzimuth = math.Mod(azimuth, 2*math.Pi)
	sm.settings.CameraPolar = utils.Clamp(polar, config.CameraMinPolar, config.CameraMaxPolar)
	sm.settings.CameraDistance = utils.Clamp(distance, config.CameraMinDistance, config.CameraMaxDistance)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetLastVariant 记录最后浏览的变体
func (sm *SettingsManager) SetLastVariant(name string) {
	sm.settings.LastVariant = name
}

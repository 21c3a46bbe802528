package systems

import (
	"math"

	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/math3d"
	"github.com/decker502/tearoom/pkg/utils"
)

// zoomBase 每格滚轮的缩放基数（再取 CameraZoomSpeed 次幂）
const zoomBase = 0.95

// CameraSystem 轨道相机控制
//
// 拖拽改变目标方位角 / 俯仰角，滚轮改变目标距离；相机以阻尼方式逼近目标。
// 俯仰角和距离始终被限制在配置范围内。
type CameraSystem struct {
	camera *math3d.Camera

	azimuth  float64
	polar    float64
	distance float64
}

// NewCameraSystem 创建相机控制系统，目标取相机当前参数
func NewCameraSystem(cam *math3d.Camera) *CameraSystem {
	cs := &CameraSystem{camera: cam}
	cs.SetOrbit(cam.Azimuth, cam.Polar, cam.Distance)
	cam.Azimuth, cam.Polar, cam.Distance = cs.azimuth, cs.polar, cs.distance
	cam.Update()
	return cs
}

// Camera 返回被控制的相机
func (cs *CameraSystem) Camera() *math3d.Camera {
	return cs.camera
}

// SetOrbit 直接设置目标轨道参数（用于恢复设置），会被限制到合法范围
func (cs *CameraSystem) SetOrbit(azimuth, polar, distance float64) {
	cs.azimuth = utils.Finite(azimuth, cs.azimuth)
	cs.polar = utils.Clamp(utils.Finite(polar, config.CameraMaxPolar), config.CameraMinPolar, config.CameraMaxPolar)
	cs.distance = utils.Clamp(utils.Finite(distance, config.CameraMaxDistance), config.CameraMinDistance, config.CameraMaxDistance)
}

// Orbit 返回目标轨道参数
func (cs *CameraSystem) Orbit() (azimuth, polar, distance float64) {
	return cs.azimuth, cs.polar, cs.distance
}

// Update 应用一帧输入并推进阻尼
//
// 参数:
//   - dx, dy: 本帧拖拽位移（像素）
//   - wheel: 滚轮增量（正值拉近）
//   - dt: 时间步长（秒）
func (cs *CameraSystem) Update(dx, dy, wheel, dt float64) {
	h := cs.camera.Height
	if h <= 0 {
		h = config.WindowHeight
	}
	k := 2 * math.Pi * config.CameraRotateSpeed / h
	cs.SetOrbit(cs.azimuth-dx*k, cs.polar-dy*k, cs.distance*math.Pow(zoomBase, wheel*config.CameraZoomSpeed))

	c := cs.camera
	c.Azimuth = utils.Approach(c.Azimuth, cs.azimuth, config.CameraDamping, dt)
	c.Polar = utils.Approach(c.Polar, cs.polar, config.CameraDamping, dt)
	c.Distance = utils.Approach(c.Distance, cs.distance, config.CameraDamping, dt)
	c.Update()
}

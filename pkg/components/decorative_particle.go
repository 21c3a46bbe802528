package components

import (
	"image/color"

	"github.com/decker502/tearoom/pkg/math3d"
)

// ParticleMotion 装饰粒子的运动方式
type ParticleMotion int

const (
	// MotionLayerOrbit 分层粒子：绕中心轴缓慢公转 + 竖直漂浮
	MotionLayerOrbit ParticleMotion = iota
	// MotionSpiralOrbit 螺旋粒子：公转速度更快
	MotionSpiralOrbit
	// MotionSparkle 闪光：原地画圈漂移 + 闪烁
	MotionSparkle
)

// DecorativeParticleComponent 装饰粒子
//
// 挂载时一次性生成，之后只读；每帧的位置、尺寸、不透明度由
// 动画系统根据 (elapsed, Phase, Speed) 计算并写入 Transform 与 ParticleVisual。
type DecorativeParticleComponent struct {
	BasePosition math3d.Vec3 // 初始位置（父节点空间）
	BaseSize     float64     // 基础半径（米）
	Opacity      float64     // 基础不透明度
	Color        color.RGBA
	Phase        float64 // [0, 2π)
	Speed        float64 // > 0

	Motion ParticleMotion

	// Center 公转轴所在点（父节点空间）
	Center math3d.Vec3
	// OrbitRate 公转角速度（弧度/秒）
	OrbitRate float64
	// FloatPerFrame 60Hz 下每帧的竖直漂浮幅度
	FloatPerFrame float64

	// Layer 所属层，螺旋粒子为 -1
	Layer int
}

// ParticleVisualComponent 粒子当前帧的可见属性
type ParticleVisualComponent struct {
	Size     float64
	Opacity  float64
	Emissive float64
}

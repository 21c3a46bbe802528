package utils

import (
	"math"

	"github.com/decker502/tearoom/pkg/math3d"
)

// Motion primitives (运动基元)
//
// 所有函数都是 (elapsed, phase, speed) 的纯函数：同一输入总是得到同一输出，
// 与调用次数无关。逐帧累加的运动在这里写成闭式解，避免长时间运行后的漂移。

// ReferenceFrameRate 是逐帧常量换算成每秒速率时使用的帧率
const ReferenceFrameRate = 60.0

// Pulse01 返回 ½·sin(freq·t + phase) + ½ ∈ [0, 1]
func Pulse01(t, freq, phase float64) float64 {
	return Finite(math.Sin(freq*t+phase)*0.5+0.5, 0.5)
}

// Breathe 返回 base + amp·Pulse01(t, freq, phase)
func Breathe(base, amp, t, freq, phase float64) float64 {
	return base + amp*Pulse01(t, freq, phase)
}

// FloatOffset 返回以每帧 perFrame·sin(speed·t + phase) 累加的竖直位移在 t 时刻的闭式值
//
//	y(t) = Σ perFrame·sin(speed·t + phase) ≈ (perFrame·60/speed)·(cos(phase) − cos(speed·t + phase))
//
// 结果有界：|y| ≤ 2·perFrame·60/speed。speed 非正时返回 0。
func FloatOffset(t, perFrame, speed, phase float64) float64 {
	if speed <= 0 {
		return 0
	}
	amp := perFrame * ReferenceFrameRate / speed
	return Finite(amp*(math.Cos(phase)-math.Cos(speed*t+phase)), 0)
}

// Drift 返回水平画圈漂移 (dx, dz) = amp·(cos(speed·t+phase), sin(speed·t+phase))
func Drift(t, amp, speed, phase float64) (dx, dz float64) {
	s, c := math.Sincos(speed*t + phase)
	return Finite(amp*c, 0), Finite(amp*s, 0)
}

// OrbitY 将 base 绕过 center 的竖直轴旋转 rate·t 弧度
//
// 角度从原始位置计算，半径恒等于 base 到轴的水平距离。
func OrbitY(base, center math3d.Vec3, rate, t float64) math3d.Vec3 {
	dx, dz := base.X-center.X, base.Z-center.Z
	s, c := math.Sincos(Finite(rate*t, 0))
	// 与 atan2(z, x) 加角度一致：角度正方向从 +X 转向 +Z
	return math3d.Vec3{
		X: center.X + dx*c - dz*s,
		Y: base.Y,
		Z: center.Z + dx*s + dz*c,
	}
}

// RatePerSecond 把每帧增量换算为每秒速率
func RatePerSecond(perFrame float64) float64 {
	return perFrame * ReferenceFrameRate
}

// ApproachFactor 把 60Hz 下的每帧逼近系数换算为 dt 秒的逼近系数
//
// 例如每帧 0.15：dt=1/60 时返回 0.15，dt=1/30 时返回 1−0.85²。
func ApproachFactor(perFrame, dt float64) float64 {
	if dt <= 0 || perFrame <= 0 {
		return 0
	}
	if perFrame >= 1 {
		return 1
	}
	return 1 - math.Pow(1-perFrame, dt*ReferenceFrameRate)
}

// Approach 按指数逼近把 current 推向 target
func Approach(current, target, perFrame, dt float64) float64 {
	next := current + (target-current)*ApproachFactor(perFrame, dt)
	return Finite(next, target)
}

// Finite 返回 v；v 为 NaN 或 ±Inf 时返回 fallback
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

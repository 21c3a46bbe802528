package components

import "github.com/decker502/tearoom/pkg/ecs"

// PulseProperty 被脉动驱动的属性
type PulseProperty int

const (
	PulseEmissive PulseProperty = iota
	PulseOpacity
	PulseLightIntensity
	// PulseScaleXZ 水平方向缩放（Y 保持 1）
	PulseScaleXZ
)

// PulseChannel 一个属性的脉动
//
//	w     = ½·sin(Frequency·t + Phase) + ½
//	value = Base + Amplitude·w        （Invert 时用 1-w）
type PulseChannel struct {
	Property  PulseProperty
	Base      float64
	Amplitude float64
	Frequency float64
	Phase     float64
	Invert    bool
}

// PulseComponent 周期性材质 / 光照 / 缩放动画
//
// Gate 非 0 时只在该交互元素悬停期间脉动，其余时间属性取 Rest。
type PulseComponent struct {
	Channels []PulseChannel

	Gate ecs.EntityID
	Rest float64
}

package components

import "github.com/decker502/tearoom/pkg/math3d"

// Affordance 交互提示（指针样式）
// 系统只声明提示，由光标系统统一应用到窗口
type Affordance int

const (
	AffordanceDefault Affordance = iota
	AffordancePointer
)

// HoverableComponent 可悬停 / 可点击的交互元素
//
// Hovered 和 Toggled 只由交互系统写入，其他系统只读。
// 拾取区域是局部空间中以 Center 为中心、半尺寸 HalfExtents 的盒子。
type HoverableComponent struct {
	Name string

	Hovered bool
	Toggled bool

	// Toggleable 点击是否切换 Toggled（推拉门）
	Toggleable bool

	Center      math3d.Vec3
	HalfExtents math3d.Vec3

	// OnHoverChange 悬停状态改变时回调
	OnHoverChange func(hovered bool)
	// OnToggle Toggled 改变时回调
	OnToggle func(toggled bool)

	Affordance Affordance

	// EnteredSeq 最近一次进入悬停的序号，用于重叠区域的仲裁
	EnteredSeq uint64
}

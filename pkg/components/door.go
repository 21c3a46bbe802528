package components

import "github.com/decker502/tearoom/pkg/ecs"

// DoorComponent 推拉门滑动状态
//
// 挂在门的滑动组节点上；Panel 是承载 HoverableComponent 的门板。
// Offset 是滑动组当前的 X 偏移，由门系统按指数逼近目标值。
type DoorComponent struct {
	IsLeft     bool
	Width      float64
	MaxSlide   float64
	HoverNudge float64
	Approach   float64

	Panel  ecs.EntityID
	Offset float64
}

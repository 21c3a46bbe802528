package systems

import (
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/utils"
)

// DoorSystem 推拉门滑动
//
// 打开时滑到 MaxSlide，仅悬停时轻推 HoverNudge，否则回到原位。
// 左门向 -X 滑动，右门向 +X 滑动。
type DoorSystem struct {
	entityManager *ecs.EntityManager
}

// NewDoorSystem 创建推拉门系统
func NewDoorSystem(em *ecs.EntityManager) *DoorSystem {
	return &DoorSystem{entityManager: em}
}

// DoorTarget 返回门在给定状态下的目标偏移
func DoorTarget(door *components.DoorComponent, hovered, open bool) float64 {
	dir := 1.0
	if door.IsLeft {
		dir = -1
	}
	switch {
	case open:
		return dir * door.MaxSlide
	case hovered:
		return dir * door.HoverNudge
	default:
		return 0
	}
}

// Update 将每扇门按指数逼近推向目标偏移
func (s *DoorSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.DoorComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		door, _ := ecs.GetComponent[*components.DoorComponent](s.entityManager, id)

		var hovered, open bool
		if h, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, door.Panel); ok {
			hovered, open = h.Hovered, h.Toggled
		}
		door.Offset = utils.Approach(door.Offset, DoorTarget(door, hovered, open), door.Approach, dt)
		tr.Position.X = door.Offset
	}
}

// LiftSystem 悬停抬升（坐垫）
type LiftSystem struct {
	entityManager *ecs.EntityManager
}

// NewLiftSystem 创建抬升系统
func NewLiftSystem(em *ecs.EntityManager) *LiftSystem {
	return &LiftSystem{entityManager: em}
}

// Update 将节点高度按指数逼近推向悬停 / 空闲高度
func (s *LiftSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.LiftComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		lift, _ := ecs.GetComponent[*components.LiftComponent](s.entityManager, id)

		target := lift.IdleY
		if GateOpen(s.entityManager, lift.Source, components.GateWhileHovered) {
			target = lift.HoverY
		}
		tr.Position.Y = utils.Approach(tr.Position.Y, target, lift.Approach, dt)
	}
}

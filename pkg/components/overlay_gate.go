package components

import (
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// OverlayGateComponent 叠加层门控
//
// 只要 Active 非空，叠加层就保持挂载；Active 按进入顺序排列，
// 最后一个是当前的“所有者”。Mounted 为挂载中的子树根（0 表示未挂载）。
type OverlayGateComponent struct {
	Name string

	Triggers []ecs.EntityID
	Mode     GateMode
	Active   []ecs.EntityID

	Def    *config.OverlayConfig
	Parent ecs.EntityID
	Anchor math3d.Vec3

	// Seed 每次挂载都用同一种子生成布局
	Seed int64

	Mounted ecs.EntityID
}

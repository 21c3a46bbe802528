package components

import "github.com/decker502/tearoom/pkg/ecs"

// GateMode 门控条件
type GateMode int

const (
	GateWhileHovered GateMode = iota
	GateWhileHoveredOrToggled
)

// VisibilityGateComponent 根据交互元素状态显示 / 隐藏节点（门前闪光、局部补光）
type VisibilityGateComponent struct {
	Source ecs.EntityID
	Mode   GateMode
}

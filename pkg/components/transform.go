package components

import (
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// TransformComponent 场景图节点的局部变换
//
// 世界变换 = 父节点世界变换 · 平移(Position) · 旋转(Rotation, XYZ 欧拉角) · 缩放(Scale)。
// Parent 为 0 表示挂在场景根下。Hidden 会隐藏整棵子树（渲染与拾取都跳过）。
//
// 这是动画系统唯一每帧写入的几何状态。
type TransformComponent struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
	Scale    math3d.Vec3

	Parent ecs.EntityID
	Hidden bool
}

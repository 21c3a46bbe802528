package systems

import (
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// TransformSystem 计算场景图中每个节点的世界变换
//
// 每帧在所有写 Transform 的系统之后运行一次，结果供渲染和拾取使用。
type TransformSystem struct {
	entityManager *ecs.EntityManager

	world   map[ecs.EntityID]math3d.Pose
	visible map[ecs.EntityID]bool
}

// NewTransformSystem 创建变换系统
func NewTransformSystem(em *ecs.EntityManager) *TransformSystem {
	return &TransformSystem{
		entityManager: em,
		world:         make(map[ecs.EntityID]math3d.Pose),
		visible:       make(map[ecs.EntityID]bool),
	}
}

// Update 重新计算所有节点的世界变换和可见性
func (s *TransformSystem) Update() {
	clear(s.world)
	clear(s.visible)
	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](s.entityManager) {
		s.resolve(id, 0)
	}
}

// resolve 递归计算 id 的世界变换（父节点优先，结果缓存）
func (s *TransformSystem) resolve(id ecs.EntityID, depth int) (math3d.Pose, bool) {
	if pose, ok := s.world[id]; ok {
		return pose, s.visible[id]
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return math3d.IdentityPose(), true
	}

	local := math3d.LocalPose(tr.Position, tr.Rotation, tr.Scale)
	parent, visible := math3d.IdentityPose(), true
	// 父链过深视为环，挂到根下
	if tr.Parent != 0 && tr.Parent != id && depth < maxHierarchyDepth {
		parent, visible = s.resolve(tr.Parent, depth+1)
	}

	pose := parent.Then(local)
	visible = visible && !tr.Hidden
	s.world[id] = pose
	s.visible[id] = visible
	return pose, visible
}

const maxHierarchyDepth = 64

// WorldPose 返回节点的世界变换
//
// 本帧尚未计算过的节点（例如刚挂载的叠加层）会立即计算。
func (s *TransformSystem) WorldPose(id ecs.EntityID) math3d.Pose {
	pose, _ := s.resolve(id, 0)
	return pose
}

// IsVisible 节点及其所有祖先都未隐藏
func (s *TransformSystem) IsVisible(id ecs.EntityID) bool {
	_, visible := s.resolve(id, 0)
	return visible
}

// WorldPosition 返回节点原点的世界坐标
func (s *TransformSystem) WorldPosition(id ecs.EntityID) math3d.Vec3 {
	return s.WorldPose(id).Origin
}

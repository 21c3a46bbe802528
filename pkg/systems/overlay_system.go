package systems

import (
	"cmp"
	"log"
	"slices"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/entities"
)

// OverlaySystem 按触发元素状态挂载 / 卸载叠加层
//
// 每个门控维护一个按进入顺序排列的活动触发列表：列表非空时
// 叠加层挂载，清空时整棵子树被立即销毁。多个触发同时活动时
// 最后进入的是所有者，叠加层只挂载一次。
type OverlaySystem struct {
	entityManager *ecs.EntityManager

	// OnChange 挂载 / 卸载后回调（可选）
	OnChange func(name string, mounted bool)
}

// NewOverlaySystem 创建叠加层系统
func NewOverlaySystem(em *ecs.EntityManager) *OverlaySystem {
	return &OverlaySystem{entityManager: em}
}

// Update 同步所有门控
func (s *OverlaySystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayGateComponent](s.entityManager) {
		gate, ok := ecs.GetComponent[*components.OverlayGateComponent](s.entityManager, id)
		if !ok {
			// 门控实体已销毁
			continue
		}
		s.syncActive(gate)

		switch {
		case len(gate.Active) > 0 && gate.Mounted == 0:
			s.mount(gate)
		case len(gate.Active) == 0 && gate.Mounted != 0:
			s.unmount(gate)
		}
	}
}

// syncActive 移除不再活动的触发，按进入悬停的先后追加新活动的触发
func (s *OverlaySystem) syncActive(gate *components.OverlayGateComponent) {
	gate.Active = slices.DeleteFunc(gate.Active, func(t ecs.EntityID) bool {
		return !GateOpen(s.entityManager, t, gate.Mode)
	})
	var entered []ecs.EntityID
	for _, t := range gate.Triggers {
		if GateOpen(s.entityManager, t, gate.Mode) && !slices.Contains(gate.Active, t) {
			entered = append(entered, t)
		}
	}
	slices.SortStableFunc(entered, func(a, b ecs.EntityID) int {
		return cmp.Compare(s.enteredSeq(a), s.enteredSeq(b))
	})
	gate.Active = append(gate.Active, entered...)
}

func (s *OverlaySystem) enteredSeq(id ecs.EntityID) uint64 {
	if h, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, id); ok {
		return h.EnteredSeq
	}
	return 0
}

func (s *OverlaySystem) mount(gate *components.OverlayGateComponent) {
	before := s.entityManager.EntityCount()
	gate.Mounted = entities.NewDataOverlay(s.entityManager, gate)
	log.Printf("[OverlaySystem] mounted %q (%d entities, owner %s)",
		gate.Name, s.entityManager.EntityCount()-before, s.ownerName(gate))
	if s.OnChange != nil {
		s.OnChange(gate.Name, true)
	}
}

func (s *OverlaySystem) unmount(gate *components.OverlayGateComponent) {
	n := entities.DestroyHierarchy(s.entityManager, gate.Mounted)
	s.entityManager.RemoveMarkedEntities()
	gate.Mounted = 0
	log.Printf("[OverlaySystem] unmounted %q (%d entities)", gate.Name, n)
	if s.OnChange != nil {
		s.OnChange(gate.Name, false)
	}
}

// Owner 返回门控当前的所有者触发（0 表示未挂载）
func Owner(gate *components.OverlayGateComponent) ecs.EntityID {
	if len(gate.Active) == 0 {
		return 0
	}
	return gate.Active[len(gate.Active)-1]
}

func (s *OverlaySystem) ownerName(gate *components.OverlayGateComponent) string {
	if h, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, Owner(gate)); ok {
		return h.Name
	}
	return "-"
}

// Mounted 返回当前挂载的叠加层名称，按门控创建顺序
func (s *OverlaySystem) Mounted() []string {
	var names []string
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayGateComponent](s.entityManager) {
		gate, _ := ecs.GetComponent[*components.OverlayGateComponent](s.entityManager, id)
		if gate.Mounted != 0 {
			names = append(names, gate.Name)
		}
	}
	return names
}

package entities

import (
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
)

// Descendants 返回 root 的所有后代（不含 root），按广度优先顺序
func Descendants(em *ecs.EntityManager, root ecs.EntityID) []ecs.EntityID {
	children := make(map[ecs.EntityID][]ecs.EntityID)
	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](em) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if tr.Parent != 0 {
			children[tr.Parent] = append(children[tr.Parent], id)
		}
	}

	var out []ecs.EntityID
	queue := children[root]
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		queue = append(queue, children[id]...)
	}
	return out
}

// DestroyHierarchy 标记 root 及其整棵子树待删除
//
// 删除是延迟的，调用方需要随后执行 RemoveMarkedEntities。
// 返回被标记的实体数。
func DestroyHierarchy(em *ecs.EntityManager, root ecs.EntityID) int {
	if !em.Exists(root) {
		return 0
	}
	list := Descendants(em, root)
	for _, id := range list {
		em.DestroyEntity(id)
	}
	em.DestroyEntity(root)
	return len(list) + 1
}

package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testVelocityComponent struct {
	VX, VY, VZ float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponentGeneric(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2, Z: 3})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 1 || pos.Y != 2 || pos.Z != 3 {
		t.Errorf("Component data mismatch, got %+v", pos)
	}

	// 泛型版本和反射版本必须使用相同的类型键
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Reflection lookup should see component added by generic API")
	}
}

func TestRemoveComponentGeneric(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	RemoveComponent[*testPositionComponent](em, id)

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if em.PendingDestroyCount() != 1 {
		t.Errorf("PendingDestroyCount: got %d, want 1", em.PendingDestroyCount())
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) || HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}

	// 已删除实体添加组件不应复活
	AddComponent(em, id, &testPositionComponent{})
	if em.Exists(id) {
		t.Error("AddComponent must not resurrect a destroyed entity")
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetEntitiesWith2: got %v, want %v", got, want)
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 50 {
		t.Errorf("GetEntitiesWith1: got %d entities, want 50", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i] <= all[i-1] {
			t.Fatalf("result not sorted at %d: %v", i, all)
		}
	}
}

package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
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

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	// 0 保留为无效ID
	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("Valid entity ID should never equal InvalidEntity")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Error("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should not have component before adding")
	}

	// 添加组件
	em.AddComponent(id, &testPositionComponent{})

	// 添加后应该返回true
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should have component after adding")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.RemoveComponent(id, reflect.TypeOf(&testPositionComponent{}))

	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除后实体仍然存在（延迟删除语义）
	em.DestroyEntity(id)
	if !em.EntityExists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.EntityExists(id) {
		t.Error("Entity should not exist after RemoveMarkedEntities")
	}

	// 组件也应随之消失
	if _, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{})); found {
		t.Error("Component should not be found after entity removal")
	}
}

func TestDestroyEntityTwice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 重复标记删除不应引发问题
	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()

	if em.EntityExists(id) {
		t.Error("Entity should be removed")
	}

	// 再次清理应为空操作
	em.RemoveMarkedEntities()
}

func TestOperationsOnUnknownEntity(t *testing.T) {
	em := NewEntityManager()

	// 对不存在的实体操作应为空操作/返回false
	em.AddComponent(999, &testPositionComponent{})
	if em.HasComponent(999, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("AddComponent on unknown entity should be a no-op")
	}

	if _, found := em.GetComponent(999, reflect.TypeOf(&testPositionComponent{})); found {
		t.Error("GetComponent on unknown entity should return false")
	}

	em.RemoveComponent(999, reflect.TypeOf(&testPositionComponent{}))
	em.DestroyEntity(999)
	em.RemoveMarkedEntities()
}

func TestEntityCount(t *testing.T) {
	em := NewEntityManager()

	if em.EntityCount() != 0 {
		t.Errorf("EntityCount: got %d, want 0", em.EntityCount())
	}

	id := em.CreateEntity()
	em.CreateEntity()

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}

	em.DestroyEntity(id)
	em.RemoveMarkedEntities()

	if em.EntityCount() != 1 {
		t.Errorf("EntityCount after removal: got %d, want 1", em.EntityCount())
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 实体1: 只有位置
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})

	// 实体2: 位置 + 速度
	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id2, &testVelocityComponent{})

	// 查询只需要位置的实体
	posType := reflect.TypeOf(&testPositionComponent{})
	velType := reflect.TypeOf(&testVelocityComponent{})

	withPos := em.GetEntitiesWith(posType)
	if len(withPos) != 2 {
		t.Errorf("Entities with position: got %d, want 2", len(withPos))
	}

	// 查询同时需要位置和速度的实体
	withBoth := em.GetEntitiesWith(posType, velType)
	if len(withBoth) != 1 {
		t.Errorf("Entities with position and velocity: got %d, want 1", len(withBoth))
	}
	if len(withBoth) == 1 && withBoth[0] != id2 {
		t.Errorf("Expected entity %d, got %d", id2, withBoth[0])
	}
}

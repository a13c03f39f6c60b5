package systems

import (
	"testing"

	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/ecs"
)

func TestTrackTargetSystemFollowsTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTrackTargetSystem(em)

	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.PositionComponent{X: 100, Y: 200})

	tracker := em.CreateEntity()
	ecs.AddComponent(em, tracker, &components.PositionComponent{})
	ecs.AddComponent(em, tracker, &components.TrackTargetComponent{
		Target:  target,
		OffsetX: 5,
		OffsetY: 10,
	})

	ts.Update(0.016)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, tracker)
	if pos.X != 105 || pos.Y != 210 {
		t.Errorf("跟踪位置 = (%v, %v), 期望 (105, 210)", pos.X, pos.Y)
	}

	// 目标移动后跟踪实体跟随
	targetPos, _ := ecs.GetComponent[*components.PositionComponent](em, target)
	targetPos.X = 300
	ts.Update(0.016)

	if pos.X != 305 {
		t.Errorf("目标移动后 X = %v, 期望 305", pos.X)
	}
}

func TestTrackTargetSystemDestroyWithTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTrackTargetSystem(em)

	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.PositionComponent{})

	tracker := em.CreateEntity()
	ecs.AddComponent(em, tracker, &components.PositionComponent{})
	ecs.AddComponent(em, tracker, &components.TrackTargetComponent{
		Target:            target,
		DestroyWithTarget: true,
	})

	em.DestroyEntity(target)
	em.RemoveMarkedEntities()

	ts.Update(0.016)
	em.RemoveMarkedEntities()

	if em.EntityExists(tracker) {
		t.Error("目标销毁后跟踪实体应一并销毁")
	}
}

func TestTrackTargetSystemOrphanStaysPut(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTrackTargetSystem(em)

	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.PositionComponent{X: 50, Y: 50})

	tracker := em.CreateEntity()
	ecs.AddComponent(em, tracker, &components.PositionComponent{})
	ecs.AddComponent(em, tracker, &components.TrackTargetComponent{
		Target:            target,
		DestroyWithTarget: false,
	})

	ts.Update(0.016)

	em.DestroyEntity(target)
	em.RemoveMarkedEntities()
	ts.Update(0.016)
	em.RemoveMarkedEntities()

	if !em.EntityExists(tracker) {
		t.Fatal("DestroyWithTarget 为 false 时跟踪实体应保留")
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, tracker)
	if pos.X != 50 || pos.Y != 50 {
		t.Errorf("孤儿跟踪实体应停在最后位置, 得到 (%v, %v)", pos.X, pos.Y)
	}
}

func TestTrackTargetSystemTargetWithoutPosition(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTrackTargetSystem(em)

	target := em.CreateEntity() // 没有位置组件

	tracker := em.CreateEntity()
	ecs.AddComponent(em, tracker, &components.PositionComponent{X: 1, Y: 2})
	ecs.AddComponent(em, tracker, &components.TrackTargetComponent{Target: target})

	ts.Update(0.016)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, tracker)
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("目标没有位置组件时跟踪位置不应改变, 得到 (%v, %v)", pos.X, pos.Y)
	}
}

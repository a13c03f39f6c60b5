package systems

import (
	"math"
	"testing"

	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/ecs"
)

func TestPhysicsSystemIntegratesVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 10, Y: 20})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: 100, VY: -50})

	ps.Update(0.1)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.X-20) > 1e-9 {
		t.Errorf("X = %v, 期望 20", pos.X)
	}
	if math.Abs(pos.Y-15) > 1e-9 {
		t.Errorf("Y = %v, 期望 15", pos.Y)
	}
}

func TestPhysicsSystemGravity(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em)
	ps.SetGravity(0, 10)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.VelocityComponent{})

	// 半隐式欧拉：先更新速度再积分位置
	ps.Update(1.0)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(vel.VY-10) > 1e-9 {
		t.Errorf("VY = %v, 期望 10", vel.VY)
	}
	if math.Abs(pos.Y-10) > 1e-9 {
		t.Errorf("Y = %v, 期望 10", pos.Y)
	}

	gx, gy := ps.Gravity()
	if gx != 0 || gy != 10 {
		t.Errorf("Gravity() = (%v, %v), 期望 (0, 10)", gx, gy)
	}
}

func TestPhysicsSystemIgnoresEntitiesWithoutVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 5, Y: 5})

	ps.Update(1.0)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 5 || pos.Y != 5 {
		t.Errorf("没有速度组件的实体位置不应改变, 得到 (%v, %v)", pos.X, pos.Y)
	}
}

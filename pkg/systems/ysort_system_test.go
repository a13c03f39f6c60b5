package systems

import (
	"math"
	"testing"

	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/config"
	"github.com/gonewx/topdown/pkg/ecs"
)

func TestYSortSystemPlain(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	if ys.Scale() != config.YSortScale {
		t.Fatalf("非正缩放系数应回退为默认值, 得到 %v", ys.Scale())
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, id, &components.YSortComponent{Offset: 50})

	ys.Update(0.016)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	want := (100.0 - 50.0) * config.YSortScale
	if math.Abs(pos.Z-want) > 1e-12 {
		t.Errorf("Z = %v, 期望 %v", pos.Z, want)
	}

	// Y 越大（越靠下）深度越大，排序时后绘制
	pos.Y = 200
	ys.Update(0.016)
	if pos.Z <= want {
		t.Errorf("Y 增大后 Z 应增大, 得到 %v (之前 %v)", pos.Z, want)
	}
}

func TestYSortSystemCustomScale(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0.01)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Y: 10})
	ecs.AddComponent(em, id, &components.YSortComponent{})

	ys.Update(0.016)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.Z-0.1) > 1e-12 {
		t.Errorf("Z = %v, 期望 0.1", pos.Z)
	}
}

func TestYSortSystemChildOffsetBreaksTie(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	parent := em.CreateEntity()
	ecs.AddComponent(em, parent, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, parent, &components.YSortComponent{})

	// 子实体与父实体位置重合，正偏移保证画在父实体下面
	child := em.CreateEntity()
	ecs.AddComponent(em, child, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, child, &components.YSortChildComponent{
		Parent: parent,
		Offset: 1,
	})

	ys.Update(0.016)

	parentPos, _ := ecs.GetComponent[*components.PositionComponent](em, parent)
	childPos, _ := ecs.GetComponent[*components.PositionComponent](em, child)

	if childPos.Z >= parentPos.Z {
		t.Errorf("正偏移子实体的深度应小于父实体: 子 %v, 父 %v", childPos.Z, parentPos.Z)
	}

	// 偏移决定的顺序不随父实体移动而改变
	parentPos.Y = 500
	childPos.Y = 500
	ys.Update(0.016)
	if childPos.Z >= parentPos.Z {
		t.Errorf("父实体移动后子实体深度仍应小于父实体: 子 %v, 父 %v", childPos.Z, parentPos.Z)
	}
}

func TestYSortSystemChildIgnoresParentOffset(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	// 父实体带一个很大的偏移
	parent := em.CreateEntity()
	ecs.AddComponent(em, parent, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, parent, &components.YSortComponent{Offset: 30})

	child := em.CreateEntity()
	ecs.AddComponent(em, child, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, child, &components.YSortChildComponent{Parent: parent})

	// 对照：与子实体参数完全相同的普通实体
	plain := em.CreateEntity()
	ecs.AddComponent(em, plain, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, plain, &components.YSortComponent{})

	ys.Update(0.016)

	childPos, _ := ecs.GetComponent[*components.PositionComponent](em, child)
	plainPos, _ := ecs.GetComponent[*components.PositionComponent](em, plain)

	// 子实体的绝对深度只由自己的 Y 和 Offset 决定，
	// 父实体的 Offset 不得混入
	want := (100.0 - 0.0) * config.YSortScale
	if math.Abs(childPos.Z-want) > 1e-12 {
		t.Errorf("子实体 Z = %v, 期望 %v（父实体偏移不应泄漏）", childPos.Z, want)
	}
	if childPos.Z != plainPos.Z {
		t.Errorf("子实体深度 %v 应与同参数普通实体 %v 一致", childPos.Z, plainPos.Z)
	}
}

func TestYSortSystemChildWithoutParent(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	// 父实体已消失的子实体仍按自己的位置参与排序
	child := em.CreateEntity()
	ecs.AddComponent(em, child, &components.PositionComponent{Y: 10, Z: 42})
	ecs.AddComponent(em, child, &components.YSortChildComponent{Parent: ecs.InvalidEntity})

	ys.Update(0.016)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, child)
	want := 10.0 * config.YSortScale
	if math.Abs(pos.Z-want) > 1e-12 {
		t.Errorf("孤儿子实体 Z = %v, 期望 %v", pos.Z, want)
	}
}

func TestYSortSystemStaticAppliesOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, id, &components.YSortStaticComponent{Offset: 50})

	ys.Update(0.016)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	want := (100.0 - 50.0) * config.YSortScale
	if math.Abs(pos.Z-want) > 1e-12 {
		t.Fatalf("Z = %v, 期望 %v", pos.Z, want)
	}

	// 移动后深度保持不变
	pos.Y = 500
	ys.Update(0.016)
	if pos.Z != want {
		t.Errorf("静态实体移动后深度不应重算, 得到 %v (期望 %v)", pos.Z, want)
	}
}

func TestYSortSystemStaticReappliesAfterReadd(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, id, &components.YSortStaticComponent{})

	ys.Update(0.016)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	first := pos.Z

	// 移除组件并移动，重新添加后应按新位置重算
	ecs.RemoveComponent[*components.YSortStaticComponent](em, id)
	ys.Update(0.016)

	pos.Y = 500
	ecs.AddComponent(em, id, &components.YSortStaticComponent{})
	ys.Update(0.016)

	if pos.Z == first {
		t.Error("重新添加静态组件后深度应按新位置重算")
	}
}

func TestYSortSystemStaticChildWaitsForParent(t *testing.T) {
	em := ecs.NewEntityManager()
	ys := NewYSortSystem(em, 0)

	parent := em.CreateEntity() // 暂时没有位置组件

	child := em.CreateEntity()
	ecs.AddComponent(em, child, &components.PositionComponent{Y: 100, Z: 42})
	ecs.AddComponent(em, child, &components.YSortStaticChildComponent{
		Parent: parent,
		Offset: 1,
	})

	// 父实体未就绪，本帧跳过
	ys.Update(0.016)
	childPos, _ := ecs.GetComponent[*components.PositionComponent](em, child)
	if childPos.Z != 42 {
		t.Fatalf("父实体未就绪时不应写入深度, 得到 %v", childPos.Z)
	}

	// 父实体就绪后下一帧生效，且只生效一次
	ecs.AddComponent(em, parent, &components.PositionComponent{Y: 100})
	ecs.AddComponent(em, parent, &components.YSortComponent{})
	ys.Update(0.016)

	parentPos, _ := ecs.GetComponent[*components.PositionComponent](em, parent)
	if childPos.Z >= parentPos.Z {
		t.Errorf("静态子实体深度应小于父实体: 子 %v, 父 %v", childPos.Z, parentPos.Z)
	}

	applied := childPos.Z
	childPos.Y = 500
	ys.Update(0.016)
	if childPos.Z != applied {
		t.Errorf("静态子实体移动后深度不应重算, 得到 %v (期望 %v)", childPos.Z, applied)
	}
}

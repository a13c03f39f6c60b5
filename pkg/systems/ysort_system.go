package systems

import (
	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/config"
	"github.com/gonewx/topdown/pkg/ecs"
)

// YSortSystem 深度排序系统
//
// 根据实体的 Y 坐标计算渲染深度并写入 PositionComponent.Z：
//
//	Z = (Y - Offset) × scale
//
// 屏幕坐标 Y 向下增长，靠下（Y 大）的实体得到更大的深度值，
// RenderSystem 按深度从小到大绘制，因此靠下的实体后绘制、
// 正确遮挡上方的实体。
//
// 子实体变体使用同一公式作用于自己的世界坐标和自己的 Offset：
// 位置组件存的已经是世界坐标，父实体的深度参数不影响子实体。
// 当子实体与父实体位置重合时，两者的相对顺序完全由 Offset 决定，
// 不会因为 Y 相等而出现绘制顺序抖动。
//
// 静态变体只生效一次；静态子实体会等到父实体位置就绪才生效。
// 必须在 PhysicsSystem 和 TrackTargetSystem 之后运行
type YSortSystem struct {
	entityManager *ecs.EntityManager

	// scale 深度值缩放系数，见 config.YSortScale 的说明
	scale float64

	// 静态变体的"已生效"记录
	// 组件被移除或实体被销毁后记录会清理，重新添加组件会再次生效
	appliedStatic      map[ecs.EntityID]bool
	appliedStaticChild map[ecs.EntityID]bool
}

// NewYSortSystem 创建深度排序系统
//
// 参数:
//   - em: 实体管理器
//   - scale: 深度值缩放系数（非正值回退为 config.YSortScale）
func NewYSortSystem(em *ecs.EntityManager, scale float64) *YSortSystem {
	if scale <= 0 {
		scale = config.YSortScale
	}
	return &YSortSystem{
		entityManager:      em,
		scale:              scale,
		appliedStatic:      make(map[ecs.EntityID]bool),
		appliedStaticChild: make(map[ecs.EntityID]bool),
	}
}

// Scale 返回当前深度值缩放系数
func (ys *YSortSystem) Scale() float64 {
	return ys.scale
}

// Update 重算所有深度值
func (ys *YSortSystem) Update(dt float64) {
	ys.applyPlain()
	ys.applyChild()
	ys.applyStatic()
	ys.applyStaticChild()
	ys.cleanupApplied()
}

// applyPlain 每帧更新普通实体的深度
func (ys *YSortSystem) applyPlain() {
	entities := ecs.GetEntitiesWith2[
		*components.YSortComponent,
		*components.PositionComponent,
	](ys.entityManager)

	for _, id := range entities {
		sortComp, _ := ecs.GetComponent[*components.YSortComponent](ys.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ys.entityManager, id)

		pos.Z = (pos.Y - sortComp.Offset) * ys.scale
	}
}

// applyChild 每帧更新子实体的深度
// 公式与普通实体相同，作用于子实体自己的世界坐标和 Offset，
// 父实体的 Offset 不会混入子实体的深度
func (ys *YSortSystem) applyChild() {
	entities := ecs.GetEntitiesWith2[
		*components.YSortChildComponent,
		*components.PositionComponent,
	](ys.entityManager)

	for _, id := range entities {
		sortComp, _ := ecs.GetComponent[*components.YSortChildComponent](ys.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ys.entityManager, id)

		pos.Z = (pos.Y - sortComp.Offset) * ys.scale
	}
}

// applyStatic 静态实体的深度只在组件添加后计算一次
func (ys *YSortSystem) applyStatic() {
	entities := ecs.GetEntitiesWith2[
		*components.YSortStaticComponent,
		*components.PositionComponent,
	](ys.entityManager)

	for _, id := range entities {
		if ys.appliedStatic[id] {
			continue
		}

		sortComp, _ := ecs.GetComponent[*components.YSortStaticComponent](ys.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ys.entityManager, id)

		pos.Z = (pos.Y - sortComp.Offset) * ys.scale
		ys.appliedStatic[id] = true
	}
}

// applyStaticChild 静态子实体的深度只在组件添加后计算一次
func (ys *YSortSystem) applyStaticChild() {
	entities := ecs.GetEntitiesWith2[
		*components.YSortStaticChildComponent,
		*components.PositionComponent,
	](ys.entityManager)

	for _, id := range entities {
		if ys.appliedStaticChild[id] {
			continue
		}

		sortComp, _ := ecs.GetComponent[*components.YSortStaticChildComponent](ys.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ys.entityManager, id)

		if _, ok := ys.parentPosition(sortComp.Parent); !ok {
			// 父实体未就绪时本帧不标记，下一帧重试
			continue
		}

		pos.Z = (pos.Y - sortComp.Offset) * ys.scale
		ys.appliedStaticChild[id] = true
	}
}

// parentPosition 获取父实体的位置组件
func (ys *YSortSystem) parentPosition(parent ecs.EntityID) (*components.PositionComponent, bool) {
	if parent == ecs.InvalidEntity || !ys.entityManager.EntityExists(parent) {
		return nil, false
	}
	return ecs.GetComponent[*components.PositionComponent](ys.entityManager, parent)
}

// cleanupApplied 清理已失效的"已生效"记录
// 组件被移除或实体被销毁后，重新添加组件应当再次生效
func (ys *YSortSystem) cleanupApplied() {
	for id := range ys.appliedStatic {
		if !ys.entityManager.EntityExists(id) ||
			!ecs.HasComponent[*components.YSortStaticComponent](ys.entityManager, id) {
			delete(ys.appliedStatic, id)
		}
	}
	for id := range ys.appliedStaticChild {
		if !ys.entityManager.EntityExists(id) ||
			!ecs.HasComponent[*components.YSortStaticChildComponent](ys.entityManager, id) {
			delete(ys.appliedStaticChild, id)
		}
	}
}

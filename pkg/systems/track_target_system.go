package systems

import (
	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/ecs"
)

// TrackTargetSystem 目标跟踪系统（兄弟模式）
//
// 每帧把目标实体的位置（加偏移）写入跟踪实体的 PositionComponent。
// 典型用途：影子、血条、锁定光圈等需要贴着另一个实体移动、
// 但又要作为顶层实体独立参与深度排序的视觉元素。
//
// 查询只遍历拥有 TrackTargetComponent 的实体，目标按ID直接取用，
// 因此不需要"能匹配所有可能目标"的宽查询。
// 必须在 PhysicsSystem 之后、YSortSystem 之前运行
type TrackTargetSystem struct {
	entityManager *ecs.EntityManager
}

// NewTrackTargetSystem 创建目标跟踪系统
func NewTrackTargetSystem(em *ecs.EntityManager) *TrackTargetSystem {
	return &TrackTargetSystem{
		entityManager: em,
	}
}

// Update 同步所有跟踪实体的位置
func (ts *TrackTargetSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[
		*components.TrackTargetComponent,
		*components.PositionComponent,
	](ts.entityManager)

	for _, id := range entities {
		track, _ := ecs.GetComponent[*components.TrackTargetComponent](ts.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ts.entityManager, id)

		// 目标已消失：按配置销毁自己或停在原地
		if track.Target == ecs.InvalidEntity || !ts.entityManager.EntityExists(track.Target) {
			if track.DestroyWithTarget {
				ts.entityManager.DestroyEntity(id)
			}
			continue
		}

		targetPos, ok := ecs.GetComponent[*components.PositionComponent](ts.entityManager, track.Target)
		if !ok {
			// 目标存在但没有位置组件，无法跟踪
			continue
		}

		pos.X = targetPos.X + track.OffsetX
		pos.Y = targetPos.Y + track.OffsetY
	}
}

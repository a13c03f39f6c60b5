package components

import "github.com/gonewx/topdown/pkg/ecs"

// TrackTargetComponent 目标跟踪组件（兄弟模式）
//
// 持有目标实体的非拥有引用，TrackTargetSystem 每帧把目标的
// 位置（加偏移）写入本实体的 PositionComponent。
// 与父子模式不同，本实体是顶层实体，可独立拥有自己的
// YSortComponent、ShadowComponent 等。
//
// 跟踪发生在物理积分之后、深度排序之前，
// 因此读到的总是目标当前帧的最终位置
type TrackTargetComponent struct {
	// Target 目标实体ID
	Target ecs.EntityID

	// OffsetX, OffsetY 相对目标位置的偏移（像素）
	OffsetX float64
	OffsetY float64

	// DestroyWithTarget 目标实体消失时是否同步销毁本实体
	// false 时本实体保留并停在原地
	DestroyWithTarget bool
}

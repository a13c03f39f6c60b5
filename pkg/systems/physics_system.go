package systems

import (
	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/ecs"
)

// PhysicsSystem 速度积分系统
// 每帧将 VelocityComponent 积分到 PositionComponent。
// 必须在 TrackTargetSystem 和 YSortSystem 之前运行，
// 保证后续系统读到的都是本帧的最终位置。
//
// 俯视角游戏没有"下落"的概念，重力默认为零；
// 需要全局受力（风、传送带等）时可通过 SetGravity 配置
type PhysicsSystem struct {
	entityManager *ecs.EntityManager
	gravityX      float64
	gravityY      float64
}

// NewPhysicsSystem 创建速度积分系统，重力默认为零
func NewPhysicsSystem(em *ecs.EntityManager) *PhysicsSystem {
	return &PhysicsSystem{
		entityManager: em,
	}
}

// SetGravity 设置全局加速度（像素/秒²）
func (ps *PhysicsSystem) SetGravity(gx, gy float64) {
	ps.gravityX = gx
	ps.gravityY = gy
}

// Gravity 返回当前全局加速度
func (ps *PhysicsSystem) Gravity() (float64, float64) {
	return ps.gravityX, ps.gravityY
}

// Update 积分一帧
func (ps *PhysicsSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.VelocityComponent,
	](ps.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.entityManager, id)

		// 先积分加速度再积分速度（半隐式欧拉，速度变化大时更稳定）
		vel.VX += ps.gravityX * dt
		vel.VY += ps.gravityY * dt

		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt
	}
}

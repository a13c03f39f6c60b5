package systems

import (
	"math"
	"time"

	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/config"
	"github.com/gonewx/topdown/pkg/ecs"
	"github.com/gonewx/topdown/pkg/game"
	"github.com/gonewx/topdown/pkg/utils"
)

// 镜头移动动画的到达判定阈值（像素）
const cameraArriveThreshold = 5.0

// CameraSystem 管理镜头移动、震屏和边界限制。
// 负责将镜头从当前位置平滑移动到目标位置，
// 并在此基础上叠加基于 trauma 模型的震屏效果。
//
// trauma 模型：受击等事件调用 AddTrauma 注入创伤值，
// 震动幅度与创伤值的平方成正比，创伤值随时间线性衰减，
// 因此震动会先猛后柔地自然平息。
//
// 必须在 YSortSystem 之后、渲染之前运行
type CameraSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cameraEntity  ecs.EntityID // 镜头实体ID

	// 可视区域逻辑尺寸（像素），用于边界限制，由宿主在 Layout 时设置
	viewW float64
	viewH float64
}

// NewCameraSystem 创建镜头控制系统
//
// 参数:
//   - em: 实体管理器
//   - gs: 全局游戏状态（镜头位置的输出目标）
//   - tuning: 调参配置（nil 时使用默认值）
func NewCameraSystem(em *ecs.EntityManager, gs *game.GameState, tuning *config.TuningConfig) *CameraSystem {
	if tuning == nil {
		tuning = config.DefaultTuningConfig()
	}

	cs := &CameraSystem{
		entityManager: em,
		gameState:     gs,
	}

	// 创建镜头实体
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		TargetX:                  gs.CameraX,
		TargetY:                  gs.CameraY,
		AnimationSpeed:           tuning.Camera.Speed,
		IsAnimating:              false,
		NoiseStrength:            tuning.Camera.NoiseStrength,
		TranslationShakeStrength: tuning.Camera.TranslationShakeStrength,
		RotationShakeStrength:    tuning.Camera.RotationShakeStrength,
		Zoom:                     1.0,
	})

	return cs
}

// CameraEntity 返回镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

// SetViewSize 设置可视区域逻辑尺寸（像素）
// 边界限制需要知道可视范围，宿主应在 Layout 变化时调用
func (cs *CameraSystem) SetViewSize(w, h float64) {
	cs.viewW = w
	cs.viewH = h
}

// Update 更新镜头系统：移动动画、创伤衰减、震屏偏移、边界限制
func (cs *CameraSystem) Update(dt float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	cs.updateMovement(camera, dt)

	// 创伤线性衰减
	camera.Trauma = math.Max(0, camera.Trauma-dt)
	camera.ShakeTime += dt

	// 震屏偏移：幅度与创伤值平方成正比
	shakeX, shakeY, roll := cs.shakeOffsets(camera)

	// 逻辑位置本身先做边界限制，震动不污染逻辑位置
	logicalX, logicalY := cs.clampToBounds(camera, cs.gameState.CameraX, cs.gameState.CameraY)
	cs.gameState.CameraX = logicalX
	cs.gameState.CameraY = logicalY

	// 边界限制同样作用于包含震动偏移的最终位置，
	// 有效震动偏移是两者之差（贴边时震动被边界吃掉）
	finalX, finalY := cs.clampToBounds(camera, logicalX+shakeX, logicalY+shakeY)
	cs.gameState.ShakeOffsetX = finalX - logicalX
	cs.gameState.ShakeOffsetY = finalY - logicalY
	cs.gameState.ShakeRoll = roll
	cs.gameState.Zoom = camera.Zoom
}

// updateMovement 处理镜头移动动画，结果写入 GameState
func (cs *CameraSystem) updateMovement(camera *components.CameraComponent, dt float64) {
	if !camera.IsAnimating {
		// 非动画状态下镜头直接贴住目标（跟随模式）
		cs.gameState.CameraX = camera.TargetX
		cs.gameState.CameraY = camera.TargetY
		return
	}

	currentX := cs.gameState.CameraX
	currentY := cs.gameState.CameraY
	dx := camera.TargetX - currentX
	dy := camera.TargetY - currentY
	distance := math.Hypot(dx, dy)

	// 检查是否已到达目标
	if distance < cameraArriveThreshold {
		cs.gameState.CameraX = camera.TargetX
		cs.gameState.CameraY = camera.TargetY
		camera.IsAnimating = false
		return
	}

	// 根据动画进度应用缓动，起步和收尾更柔和
	speed := camera.AnimationSpeed
	if camera.TotalDistance > 0 {
		progress := utils.Clamp01(1 - distance/camera.TotalDistance)
		// 缓动曲线的导数在两端趋近于零，这里用曲线值调制速度下限，
		// 保证动画不会在端点完全停住
		factor := 0.25 + 0.75*utils.EaseInOutQuad(progress)
		speed *= factor
	}

	moveDistance := speed * dt
	if moveDistance >= distance {
		cs.gameState.CameraX = camera.TargetX
		cs.gameState.CameraY = camera.TargetY
		camera.IsAnimating = false
		return
	}

	cs.gameState.CameraX = currentX + dx/distance*moveDistance
	cs.gameState.CameraY = currentY + dy/distance*moveDistance
}

// shakeOffsets 计算当前帧的震屏偏移和旋转
func (cs *CameraSystem) shakeOffsets(camera *components.CameraComponent) (float64, float64, float64) {
	if camera.Trauma <= 0 {
		return 0, 0, 0
	}

	// 噪声采样位置随时间和创伤值推进，三个通道使用错开的种子
	samplePos := camera.ShakeTime*camera.NoiseStrength + camera.Trauma
	amplitude := camera.Trauma * camera.Trauma

	shakeX := utils.ValueNoise1D(samplePos, camera.ShakeSeed) * amplitude * camera.TranslationShakeStrength
	shakeY := utils.ValueNoise1D(samplePos, camera.ShakeSeed+1) * amplitude * camera.TranslationShakeStrength
	rollDeg := utils.ValueNoise1D(samplePos, camera.ShakeSeed+2) * amplitude * camera.RotationShakeStrength

	return shakeX, shakeY, rollDeg * math.Pi / 180
}

// clampToBounds 将镜头中心限制在边界内
// 可视区域大于边界时不做限制（与不设边界等效）
func (cs *CameraSystem) clampToBounds(camera *components.CameraComponent, x, y float64) (float64, float64) {
	if !camera.HasBounds || cs.viewW <= 0 || cs.viewH <= 0 {
		return x, y
	}

	zoom := camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := cs.viewW / zoom / 2
	halfH := cs.viewH / zoom / 2

	boundsW := camera.BoundsMaxX - camera.BoundsMinX
	boundsH := camera.BoundsMaxY - camera.BoundsMinY
	if halfW*2 >= boundsW || halfH*2 >= boundsH {
		return x, y
	}

	x = math.Max(camera.BoundsMinX+halfW, math.Min(camera.BoundsMaxX-halfW, x))
	y = math.Max(camera.BoundsMinY+halfH, math.Min(camera.BoundsMaxY-halfH, y))
	return x, y
}

// MoveTo 平滑移动镜头到目标位置
//
// 参数:
//   - targetX, targetY: 目标位置（世界坐标）
//   - speed: 移动速度（像素/秒），非正值保持当前速度
func (cs *CameraSystem) MoveTo(targetX, targetY, speed float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	camera.TargetX = targetX
	camera.TargetY = targetY
	if speed > 0 {
		camera.AnimationSpeed = speed
	}
	camera.IsAnimating = true

	// 记录起点和总距离（用于缓动进度计算）
	camera.StartX = cs.gameState.CameraX
	camera.StartY = cs.gameState.CameraY
	camera.TotalDistance = math.Hypot(targetX-camera.StartX, targetY-camera.StartY)
}

// JumpTo 立即把镜头设置到目标位置（无动画）
func (cs *CameraSystem) JumpTo(x, y float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	camera.TargetX = x
	camera.TargetY = y
	camera.IsAnimating = false
	cs.gameState.CameraX = x
	cs.gameState.CameraY = y
}

// StopAnimation 停止镜头动画，立即设置到目标位置
func (cs *CameraSystem) StopAnimation() {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	camera.IsAnimating = false
	cs.gameState.CameraX = camera.TargetX
	cs.gameState.CameraY = camera.TargetY
}

// IsAnimating 返回镜头是否正在动画中
func (cs *CameraSystem) IsAnimating() bool {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return false
	}
	return camera.IsAnimating
}

// SetBounds 设置镜头可视区域边界（世界坐标）
func (cs *CameraSystem) SetBounds(minX, minY, maxX, maxY float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	camera.HasBounds = true
	camera.BoundsMinX = minX
	camera.BoundsMinY = minY
	camera.BoundsMaxX = maxX
	camera.BoundsMaxY = maxY
}

// ClearBounds 取消镜头边界限制
func (cs *CameraSystem) ClearBounds() {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	camera.HasBounds = false
}

// AddTrauma 注入创伤值触发震屏
// 创伤值上限为 1.0；从零开始震动时重新取样噪声种子
func (cs *CameraSystem) AddTrauma(trauma float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	if camera.Trauma == 0 {
		// 取毫秒部分作为伪随机种子
		camera.ShakeSeed = float64(time.Now().UnixMilli() & 0xFFFF)
		camera.ShakeTime = 0
	}
	camera.Trauma = math.Min(1.0, camera.Trauma+math.Abs(trauma))
}

// AddTraumaWithThreshold 带阈值的创伤注入
// 如果当前创伤值已达到阈值则不再叠加，
// 用于防止连续小伤害把震动不断顶到最大
func (cs *CameraSystem) AddTraumaWithThreshold(trauma, threshold float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	if camera.Trauma >= threshold {
		return
	}
	cs.AddTrauma(trauma)
}

// Trauma 返回当前创伤值
func (cs *CameraSystem) Trauma() float64 {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return 0
	}
	return camera.Trauma
}

// SetZoom 设置镜头缩放倍率
// 超出 [config.MinZoom, config.MaxZoom] 的值会被钳制
func (cs *CameraSystem) SetZoom(zoom float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	camera.Zoom = math.Max(config.MinZoom, math.Min(config.MaxZoom, zoom))
}

// Zoom 返回当前镜头缩放倍率
func (cs *CameraSystem) Zoom() float64 {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return 1
	}
	return camera.Zoom
}

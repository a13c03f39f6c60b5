package systems

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/ecs"
	"github.com/gonewx/topdown/pkg/game"
)

// SpatialAudioSystem 空间音频系统
//
// 以镜头位置为接收者，每帧根据声源实体与镜头的距离
// 衰减 AudioEmitterComponent 中所有播放器的音量：
//
//	音量 = 基础音量 × (1 - d²/max²)² × 音效有效音量
//
// 平方衰减让远处的声音衰减得更快，接近真实听感。
// 播放结束的播放器会被自动移除；所有播放器都结束后
// 发射器组件保留，便于声源复用。
//
// 必须在 CameraSystem 之后运行（依赖本帧的镜头位置）
type SpatialAudioSystem struct {
	entityManager *ecs.EntityManager
	audioManager  *game.AudioManager
	gameState     *game.GameState
}

// NewSpatialAudioSystem 创建空间音频系统
func NewSpatialAudioSystem(em *ecs.EntityManager, am *game.AudioManager, gs *game.GameState) *SpatialAudioSystem {
	return &SpatialAudioSystem{
		entityManager: em,
		audioManager:  am,
		gameState:     gs,
	}
}

// Update 更新所有声源的音量并清理结束的播放器
func (ss *SpatialAudioSystem) Update(dt float64) {
	if ss.audioManager == nil {
		return
	}

	receiverX := ss.gameState.CameraX
	receiverY := ss.gameState.CameraY
	maxDistance := ss.audioManager.MaxSpatialDistance()
	baseVolume := ss.audioManager.SoundVolume()

	entities := ecs.GetEntitiesWith2[
		*components.AudioEmitterComponent,
		*components.PositionComponent,
	](ss.entityManager)

	for _, id := range entities {
		emitter, _ := ecs.GetComponent[*components.AudioEmitterComponent](ss.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ss.entityManager, id)

		dx := pos.X - receiverX
		dy := pos.Y - receiverY
		volume := SpatialVolume(dx*dx+dy*dy, maxDistance, emitter.Volume, baseVolume)

		// 更新音量，同时清理已结束的播放器
		active := emitter.Players[:0]
		for _, player := range emitter.Players {
			if !player.IsPlaying() {
				continue
			}
			player.SetVolume(volume)
			active = append(active, player)
		}
		emitter.Players = active
	}
}

// AttachEmitter 把播放器附加到实体的空间音频发射器上
// 实体没有发射器组件时自动创建。播放器通常来自
// AudioManager.NewSpatialPlayer，调用方负责启动播放
func (ss *SpatialAudioSystem) AttachEmitter(id ecs.EntityID, volume float64, players ...*audio.Player) {
	if !ss.entityManager.EntityExists(id) {
		return
	}

	emitter, ok := ecs.GetComponent[*components.AudioEmitterComponent](ss.entityManager, id)
	if !ok {
		emitter = &components.AudioEmitterComponent{Volume: volume}
		ecs.AddComponent(ss.entityManager, id, emitter)
	} else {
		emitter.Volume = volume
	}
	emitter.Players = append(emitter.Players, players...)
}

// SpatialVolume 计算空间音频的最终音量
//
// 参数:
//   - distSq: 声源到接收者的距离平方（像素²）
//   - maxDistance: 最大可闻距离（像素）
//   - emitterVolume: 声源基础音量 (0.0-1.0)
//   - baseVolume: 全局有效音量（设置音量 × 全局音量）
//
// 返回:
//   - 最终音量 ∈ [0, emitterVolume × baseVolume]
func SpatialVolume(distSq, maxDistance, emitterVolume, baseVolume float64) float64 {
	if maxDistance <= 0 {
		return 0
	}

	multiplier := 1 - distSq/(maxDistance*maxDistance)
	if multiplier < 0 {
		multiplier = 0
	} else if multiplier > 1 {
		multiplier = 1
	}

	return emitterVolume * multiplier * multiplier * baseVolume
}

package components

import "github.com/hajimehoshi/ebiten/v2/audio"

// AudioEmitterComponent 空间音频发射器组件
//
// 挂载此组件的实体成为一个声源：SpatialAudioSystem 每帧根据
// 实体位置与镜头（接收者）的距离衰减其所有播放器的音量。
// 要求实体同时拥有 PositionComponent
type AudioEmitterComponent struct {
	// Volume 基础音量 (0.0-1.0)
	// 最终音量 = Volume × 距离衰减系数 × 全局音量
	Volume float64

	// Players 归属此发射器的播放器列表
	// 播放结束的播放器由 SpatialAudioSystem 自动移除
	Players []*audio.Player
}

package game

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效和背景音乐的播放
//   - 实现音量控制（从 SettingsManager 读取设置，再乘以全局音量）
//   - 为空间音频系统提供独立播放器
//
// 设计原则：
//   - 中心化管理：所有音频播放都通过 AudioManager
//   - 与设置联动：自动应用 SettingsManager 中的音量设置
//   - 简化调用：宿主先注册已解码的音频数据，之后通过资源ID播放
type AudioManager struct {
	audioContext    *audio.Context           // ebiten 音频上下文
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	soundData       map[string][]byte        // 已注册的音效数据（资源ID -> 解码后PCM）
	musicData       map[string][]byte        // 已注册的音乐数据（资源ID -> 解码后PCM）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源ID -> 播放器）
	currentMusic    *audio.Player            // 当前播放的背景音乐
	currentMusicID  string                   // 当前播放的背景音乐ID

	// globalVolume 全局音量，所有声音最终都乘以此值
	globalVolume float64

	// maxSpatialDistance 空间音频最大可闻距离（像素）
	// 超过此距离的声源完全静音
	maxSpatialDistance float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（每个进程只能有一个）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:       ctx,
		settingsManager:    sm,
		soundData:          make(map[string][]byte),
		musicData:          make(map[string][]byte),
		soundPlayers:       make(map[string]*audio.Player),
		globalVolume:       0.5,
		maxSpatialDistance: 250.0,
	}
}

// RegisterSound 注册音效数据
// data 必须是与音频上下文采样率一致的已解码 PCM 数据
func (am *AudioManager) RegisterSound(soundID string, data []byte) {
	am.soundData[soundID] = data
}

// RegisterMusic 注册背景音乐数据
// data 必须是与音频上下文采样率一致的已解码 PCM 数据，播放时无缝循环
func (am *AudioManager) RegisterMusic(musicID string, data []byte) {
	am.musicData[musicID] = data
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	// 检查音效是否启用
	if am.settingsManager != nil {
		if !am.settingsManager.GetSettings().SoundEnabled {
			return false // 音效已禁用
		}
	}

	// 获取或加载音效播放器
	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	// 设置音量
	player.SetVolume(am.SoundVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// PlayMusic 播放背景音乐
// 背景音乐使用 MusicVolume 设置控制音量，循环播放
// 同一时间只能播放一首背景音乐
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	// 检查音乐是否启用
	if am.settingsManager != nil {
		if !am.settingsManager.GetSettings().MusicEnabled {
			return false // 音乐已禁用
		}
	}

	// 如果已经在播放同一首音乐，不重复播放
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	// 停止当前音乐
	am.StopMusic()

	player, err := am.newMusicPlayer(musicID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player %s: %v", musicID, err)
		return false
	}

	player.SetVolume(am.MusicVolume())
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// NewSpatialPlayer 为空间音频创建独立播放器
// 每个声源实体需要自己的播放器实例，音量由 SpatialAudioSystem 每帧更新
//
// 返回：
//   - *audio.Player: 新播放器（未开始播放）
//   - error: 音效未注册或创建失败
func (am *AudioManager) NewSpatialPlayer(soundID string) (*audio.Player, error) {
	data, ok := am.soundData[soundID]
	if !ok {
		return nil, fmt.Errorf("sound %q not registered", soundID)
	}
	if am.audioContext == nil {
		return nil, fmt.Errorf("audio context not initialized")
	}
	return am.audioContext.NewPlayer(bytes.NewReader(data))
}

// ApplyVolumes 将当前音量设置应用到正在播放的音乐
// 音量设置变更后调用（音效播放器在每次播放时取最新音量）
func (am *AudioManager) ApplyVolumes() {
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.MusicVolume())
	}
}

// GlobalVolume 获取全局音量
func (am *AudioManager) GlobalVolume() float64 {
	return am.globalVolume
}

// SetGlobalVolume 设置全局音量
// 音量会被限制在 0.0 ~ 1.0 范围内
func (am *AudioManager) SetGlobalVolume(volume float64) {
	am.globalVolume = clampVolume(volume)
	am.ApplyVolumes()
}

// IncrementGlobalVolume 按增量调整全局音量
// 结果始终被限制在 0.0 ~ 1.0 范围内
func (am *AudioManager) IncrementGlobalVolume(increment float64) {
	am.SetGlobalVolume(am.globalVolume + increment)
}

// MaxSpatialDistance 获取空间音频最大可闻距离
func (am *AudioManager) MaxSpatialDistance() float64 {
	return am.maxSpatialDistance
}

// SetMaxSpatialDistance 设置空间音频最大可闻距离（像素）
// 非正值会被忽略
func (am *AudioManager) SetMaxSpatialDistance(distance float64) {
	if distance <= 0 {
		return
	}
	am.maxSpatialDistance = distance
}

// SoundVolume 计算音效的有效音量（设置音量 × 全局音量）
func (am *AudioManager) SoundVolume() float64 {
	volume := 1.0
	if am.settingsManager != nil {
		volume = am.settingsManager.GetSettings().SoundVolume
	}
	return volume * am.globalVolume
}

// MusicVolume 计算音乐的有效音量（设置音量 × 全局音量）
func (am *AudioManager) MusicVolume() float64 {
	volume := 1.0
	if am.settingsManager != nil {
		volume = am.settingsManager.GetSettings().MusicVolume
	}
	return volume * am.globalVolume
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}

	data, ok := am.soundData[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound %s not registered", soundID)
		return nil
	}
	if am.audioContext == nil {
		log.Printf("[AudioManager] Warning: Audio context not initialized")
		return nil
	}

	player := am.audioContext.NewPlayerFromBytes(data)
	am.soundPlayers[soundID] = player
	return player
}

// newMusicPlayer 创建循环播放的音乐播放器
func (am *AudioManager) newMusicPlayer(musicID string) (*audio.Player, error) {
	data, ok := am.musicData[musicID]
	if !ok {
		return nil, fmt.Errorf("music %q not registered", musicID)
	}
	if am.audioContext == nil {
		return nil, fmt.Errorf("audio context not initialized")
	}

	loop := audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data)))
	return am.audioContext.NewPlayer(loop)
}

package game

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	// 摄像机位置（世界坐标系统，指向可视区域中心）
	// 由 CameraSystem 每帧写入，RenderSystem 读取用于世界坐标和屏幕坐标转换
	CameraX float64
	CameraY float64

	// 震屏偏移（像素）和旋转角（弧度）
	// 与 CameraX/Y 分开存储，镜头逻辑位置不被震动污染
	ShakeOffsetX float64
	ShakeOffsetY float64
	ShakeRoll    float64

	// Zoom 当前镜头缩放倍率
	Zoom float64

	// DebugMode 是否处于调试模式
	// 可用于显示调试信息，也可作为允许作弊操作的开关
	DebugMode bool

	settingsManager *SettingsManager
	audioManager    *AudioManager
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{
			Zoom: 1.0,
		}
	}
	return globalGameState
}

// ResetGameState 重置全局单例（主要用于测试隔离）
func ResetGameState() {
	globalGameState = nil
}

// SetSettingsManager 设置全局设置管理器
func (gs *GameState) SetSettingsManager(sm *SettingsManager) {
	gs.settingsManager = sm
}

// GetSettingsManager 获取全局设置管理器，可能为 nil
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// SetAudioManager 设置全局音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 获取全局音频管理器，可能为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// ToggleDebugMode 切换调试模式开关
func (gs *GameState) ToggleDebugMode() {
	gs.DebugMode = !gs.DebugMode
}

package app

import (
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/topdown/pkg/config"
	"github.com/gonewx/topdown/pkg/ecs"
	"github.com/gonewx/topdown/pkg/game"
	"github.com/gonewx/topdown/pkg/systems"
)

// 音频上下文采样率（Hz），注册的 PCM 数据必须与此一致
const audioSampleRate = 48000

// Config 应用配置
type Config struct {
	// Title 窗口标题
	Title string

	// ScreenW, ScreenH 屏幕逻辑尺寸（像素）
	ScreenW int
	ScreenH int

	// Fullscreen 启动时是否全屏（与设置中的全屏选项取或）
	Fullscreen bool

	// Verbose 是否输出详细日志，false 时丢弃所有 log 输出
	Verbose bool

	// TuningPath 调参配置文件路径，空或文件不存在时使用默认值
	TuningPath string

	// AppName 应用名，用于设置的跨平台持久化存储目录
	// 为空时设置只保存在内存中
	AppName string
}

// App 把所有系统组装成一个可直接运行的 ebiten.Game。
//
// 每帧执行顺序（Update）：
//  1. PhysicsSystem
//  2. TrackTargetSystem
//  3. YSortSystem
//  4. CameraSystem
//  5. SpatialAudioSystem
//  6. DebugSystem（按键处理）
//  7. 当前场景 Update
//  8. EntityManager.RemoveMarkedEntities
//
// Draw：当前场景 → RenderSystem → 调试叠加层 → 截图
type App struct {
	config Config
	tuning *config.TuningConfig

	entityManager *ecs.EntityManager
	gameState     *game.GameState

	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	sceneManager    *game.SceneManager

	physicsSystem      *systems.PhysicsSystem
	trackTargetSystem  *systems.TrackTargetSystem
	ysortSystem        *systems.YSortSystem
	cameraSystem       *systems.CameraSystem
	spatialAudioSystem *systems.SpatialAudioSystem
	renderSystem       *systems.RenderSystem
	debugSystem        *systems.DebugSystem
}

// NewApp 创建并组装应用
//
// 调参配置、设置存储和音频上下文的初始化失败都不是致命错误，
// 对应子系统会降级运行（默认调参、内存设置、静音）
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}
	if cfg.ScreenW <= 0 {
		cfg.ScreenW = 1280
	}
	if cfg.ScreenH <= 0 {
		cfg.ScreenH = 720
	}

	// 调参配置
	tuning := config.DefaultTuningConfig()
	if cfg.TuningPath != "" {
		loaded, err := config.LoadTuningConfig(cfg.TuningPath)
		if err != nil {
			log.Printf("[App] Warning: failed to load tuning config: %v (using defaults)", err)
		} else {
			tuning = loaded
		}
	}
	config.DefaultShadowSize = config.ShadowSize{
		Width:  tuning.Shadow.Width,
		Height: tuning.Shadow.Height,
	}

	// 设置持久化存储
	var gdataManager *gdata.Manager
	if cfg.AppName != "" {
		m, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			log.Printf("[App] Warning: failed to open data storage: %v (settings will not persist)", err)
		} else {
			gdataManager = m
		}
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: failed to create settings manager: %v", err)
	}

	// 音频
	audioManager := game.NewAudioManager(audio.NewContext(audioSampleRate), settingsManager)
	audioManager.SetGlobalVolume(tuning.Audio.GlobalVolume)
	audioManager.SetMaxSpatialDistance(tuning.Audio.MaxSpatialDistance)

	// 全局状态
	gameState := game.GetGameState()
	gameState.SetSettingsManager(settingsManager)
	gameState.SetAudioManager(audioManager)

	// ECS 与系统
	em := ecs.NewEntityManager()
	cameraSystem := systems.NewCameraSystem(em, gameState, tuning)
	cameraSystem.SetViewSize(float64(cfg.ScreenW), float64(cfg.ScreenH))

	app := &App{
		config:             cfg,
		tuning:             tuning,
		entityManager:      em,
		gameState:          gameState,
		settingsManager:    settingsManager,
		audioManager:       audioManager,
		sceneManager:       game.NewSceneManager(),
		physicsSystem:      systems.NewPhysicsSystem(em),
		trackTargetSystem:  systems.NewTrackTargetSystem(em),
		ysortSystem:        systems.NewYSortSystem(em, tuning.YSortScale),
		cameraSystem:       cameraSystem,
		spatialAudioSystem: systems.NewSpatialAudioSystem(em, audioManager, gameState),
		renderSystem:       systems.NewRenderSystem(em, gameState, cfg.ScreenW, cfg.ScreenH),
	}
	app.debugSystem = systems.NewDebugSystem(em, gameState, cameraSystem)

	return app, nil
}

// Run 配置窗口并启动游戏主循环，阻塞直到窗口关闭。
// 退出前会保存当前场景状态（如果场景实现了 Saveable）
func (a *App) Run() error {
	ebiten.SetWindowTitle(a.config.Title)
	ebiten.SetWindowSize(a.config.ScreenW, a.config.ScreenH)

	fullscreen := a.config.Fullscreen
	if a.settingsManager != nil && a.settingsManager.GetSettings().Fullscreen {
		fullscreen = true
	}
	ebiten.SetFullscreen(fullscreen)

	err := ebiten.RunGame(a)

	if !a.sceneManager.SaveCurrentSceneOnExit() {
		log.Printf("[App] Warning: failed to save scene state on exit")
	}
	return err
}

// Update 实现 ebiten.Game
func (a *App) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	a.physicsSystem.Update(dt)
	a.trackTargetSystem.Update(dt)
	a.ysortSystem.Update(dt)
	a.cameraSystem.Update(dt)
	a.spatialAudioSystem.Update(dt)
	a.debugSystem.Update(dt)

	a.sceneManager.Update(dt)

	a.entityManager.RemoveMarkedEntities()
	return nil
}

// Draw 实现 ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	a.renderSystem.Draw(screen)
	a.debugSystem.Draw(screen)
	a.debugSystem.PostDraw(screen)
}

// Layout 实现 ebiten.Game，返回固定的逻辑分辨率
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.ScreenW, a.config.ScreenH
}

// EntityManager 返回实体管理器
func (a *App) EntityManager() *ecs.EntityManager {
	return a.entityManager
}

// GameState 返回全局游戏状态
func (a *App) GameState() *game.GameState {
	return a.gameState
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}

// SettingsManager 返回设置管理器
func (a *App) SettingsManager() *game.SettingsManager {
	return a.settingsManager
}

// AudioManager 返回音频管理器
func (a *App) AudioManager() *game.AudioManager {
	return a.audioManager
}

// PhysicsSystem 返回速度积分系统
func (a *App) PhysicsSystem() *systems.PhysicsSystem {
	return a.physicsSystem
}

// CameraSystem 返回镜头控制系统
func (a *App) CameraSystem() *systems.CameraSystem {
	return a.cameraSystem
}

// YSortSystem 返回深度排序系统
func (a *App) YSortSystem() *systems.YSortSystem {
	return a.ysortSystem
}

// DebugSystem 返回调试系统
func (a *App) DebugSystem() *systems.DebugSystem {
	return a.debugSystem
}

// Tuning 返回当前生效的调参配置
func (a *App) Tuning() *config.TuningConfig {
	return a.tuning
}

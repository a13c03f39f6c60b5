package systems

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/topdown/pkg/ecs"
	"github.com/gonewx/topdown/pkg/game"
)

// DebugSystem 调试系统
// 负责调试模式开关、全屏切换、调试缩放和截图。
//
// 默认按键：
//   - F3:  切换调试模式
//   - F11: 切换全屏
//   - F12: 截图（保存为工作目录下的 screenshot-N.png）
//   - =/-: 调试模式下缩放镜头（每次 ±1 倍率）
//
// 按键可通过字段覆盖，设置为 0 可禁用对应功能
type DebugSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cameraSystem  *CameraSystem

	// 按键绑定
	DebugKey      ebiten.Key
	FullscreenKey ebiten.Key
	ScreenshotKey ebiten.Key
	ZoomInKey     ebiten.Key
	ZoomOutKey    ebiten.Key

	screenshotCounter int
	screenshotArmed   bool
}

// NewDebugSystem 创建调试系统
//
// 参数:
//   - em: 实体管理器（调试信息显示实体数量）
//   - gs: 全局游戏状态
//   - cs: 镜头系统（调试缩放），可为 nil
func NewDebugSystem(em *ecs.EntityManager, gs *game.GameState, cs *CameraSystem) *DebugSystem {
	return &DebugSystem{
		entityManager: em,
		gameState:     gs,
		cameraSystem:  cs,
		DebugKey:      ebiten.KeyF3,
		FullscreenKey: ebiten.KeyF11,
		ScreenshotKey: ebiten.KeyF12,
		ZoomInKey:     ebiten.KeyEqual,
		ZoomOutKey:    ebiten.KeyMinus,
	}
}

// Update 处理调试按键
func (ds *DebugSystem) Update(dt float64) {
	if ds.DebugKey != 0 && inpututil.IsKeyJustPressed(ds.DebugKey) {
		ds.gameState.ToggleDebugMode()
		log.Printf("[DebugSystem] Debug mode: %v", ds.gameState.DebugMode)
	}

	if ds.FullscreenKey != 0 && inpututil.IsKeyJustPressed(ds.FullscreenKey) {
		ds.ToggleFullscreen()
	}

	if ds.ScreenshotKey != 0 && inpututil.IsKeyJustPressed(ds.ScreenshotKey) {
		ds.ArmScreenshot()
	}

	// 缩放是调试功能，仅在调试模式下生效
	if ds.gameState.DebugMode && ds.cameraSystem != nil {
		if ds.ZoomInKey != 0 && inpututil.IsKeyJustPressed(ds.ZoomInKey) {
			ds.cameraSystem.SetZoom(ds.cameraSystem.Zoom() + 1)
		}
		if ds.ZoomOutKey != 0 && inpututil.IsKeyJustPressed(ds.ZoomOutKey) {
			ds.cameraSystem.SetZoom(ds.cameraSystem.Zoom() - 1)
		}
	}
}

// ToggleFullscreen 切换全屏模式
func (ds *DebugSystem) ToggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

// ArmScreenshot 标记在下一次绘制结束后截图
func (ds *DebugSystem) ArmScreenshot() {
	ds.screenshotArmed = true
}

// Draw 绘制调试信息叠加层（仅调试模式）
func (ds *DebugSystem) Draw(screen *ebiten.Image) {
	if !ds.gameState.DebugMode {
		return
	}

	msg := fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nEntities: %d\nCamera: (%.1f, %.1f) x%.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		ds.entityManager.EntityCount(),
		ds.gameState.CameraX, ds.gameState.CameraY, ds.gameState.Zoom,
	)
	ebitenutil.DebugPrint(screen, msg)
}

// PostDraw 在所有绘制完成后调用，处理待截图请求
func (ds *DebugSystem) PostDraw(screen *ebiten.Image) {
	if !ds.screenshotArmed {
		return
	}
	ds.screenshotArmed = false

	path := fmt.Sprintf("./screenshot-%d.png", ds.screenshotCounter)
	ds.screenshotCounter++

	if err := saveScreenshot(screen, path); err != nil {
		log.Printf("[DebugSystem] failed to take screenshot, %v", err)
		return
	}
	log.Printf("[DebugSystem] Screenshot saved: %s", path)
}

// saveScreenshot 读取屏幕像素并编码为 PNG 文件
func saveScreenshot(screen *ebiten.Image, path string) error {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := &image.RGBA{
		Pix:    pixels,
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return nil
}

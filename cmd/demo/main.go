// 演示程序：方向键移动角色，空格触发震屏，F3 打开调试信息。
// 角色脚下的影子是一个独立实体，通过目标跟踪贴着角色移动，
// 并以正深度偏移保证始终画在角色下面。
package main

import (
	"flag"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/profile"

	"github.com/gonewx/topdown/pkg/app"
	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/config"
	"github.com/gonewx/topdown/pkg/ecs"
	"github.com/gonewx/topdown/pkg/game"
	"github.com/gonewx/topdown/pkg/utils"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	playerSpeed = 220.0 // 像素/秒
	worldSize   = 2000.0
)

func main() {
	verbose := flag.Bool("verbose", false, "输出详细日志")
	fullscreen := flag.Bool("fullscreen", false, "全屏启动")
	profileMode := flag.Bool("profile", false, "记录 CPU profile 到当前目录")
	flag.Parse()

	if *profileMode {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	a, err := app.NewApp(app.Config{
		Title:      "topdown demo",
		ScreenW:    screenWidth,
		ScreenH:    screenHeight,
		Fullscreen: *fullscreen,
		Verbose:    *verbose,
		AppName:    "topdown-demo",
	})
	if err != nil {
		log.Fatalf("[Demo] failed to create app: %v", err)
	}

	a.SceneManager().SwitchTo(newDemoScene(a))

	if err := a.Run(); err != nil {
		log.Fatalf("[Demo] %v", err)
	}
}

// demoScene 演示场景：一个可移动的角色、它的影子和一片树
type demoScene struct {
	app       *app.App
	player    ecs.EntityID
	rockImage *ebiten.Image
}

func newDemoScene(a *app.App) *demoScene {
	s := &demoScene{
		app:       a,
		rockImage: solidSprite(20, 14, color.RGBA{R: 0x6b, G: 0x6b, B: 0x6b, A: 0xff}),
	}
	em := a.EntityManager()

	// 角色
	s.player = em.CreateEntity()
	ecs.AddComponent(em, s.player, &components.PositionComponent{})
	ecs.AddComponent(em, s.player, &components.VelocityComponent{})
	ecs.AddComponent(em, s.player, &components.SpriteComponent{
		Image:   solidSprite(32, 48, color.RGBA{R: 0x3a, G: 0x86, B: 0xff, A: 0xff}),
		AnchorX: 0.5,
		AnchorY: 1.0, // 锚点在脚底，Y 排序按脚的位置比较
		Visible: true,
	})
	ecs.AddComponent(em, s.player, &components.YSortComponent{})

	// 影子：兄弟实体，跟踪角色位置，深度始终略低于角色
	shadowSize := config.GetShadowSize("player")
	shadow := em.CreateEntity()
	ecs.AddComponent(em, shadow, &components.PositionComponent{})
	ecs.AddComponent(em, shadow, &components.TrackTargetComponent{
		Target:            s.player,
		DestroyWithTarget: true,
	})
	ecs.AddComponent(em, shadow, &components.ShadowComponent{
		Width:  shadowSize.Width,
		Height: shadowSize.Height,
		Alpha:  config.DefaultShadowAlpha,
	})
	ecs.AddComponent(em, shadow, &components.YSortChildComponent{
		Parent: s.player,
		Offset: 1, // 参考点上移 1 像素，深度略小于角色，画在角色之前
	})

	// 随机散布一些树，静态实体的深度只算一次
	rng := rand.New(rand.NewSource(7))
	treeImage := solidSprite(24, 64, color.RGBA{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff})
	for i := 0; i < 40; i++ {
		tree := em.CreateEntity()
		ecs.AddComponent(em, tree, &components.PositionComponent{
			X: (rng.Float64() - 0.5) * worldSize,
			Y: (rng.Float64() - 0.5) * worldSize,
		})
		ecs.AddComponent(em, tree, &components.SpriteComponent{
			Image:   treeImage,
			AnchorX: 0.5,
			AnchorY: 1.0,
			Visible: true,
		})
		ecs.AddComponent(em, tree, &components.YSortStaticComponent{})
	}

	// 镜头限制在世界范围内
	a.CameraSystem().SetBounds(-worldSize/2, -worldSize/2, worldSize/2, worldSize/2)
	a.CameraSystem().JumpTo(0, 0)

	return s
}

// Update 实现 game.Scene
func (s *demoScene) Update(deltaTime float64) {
	em := s.app.EntityManager()

	vel, ok := ecs.GetComponent[*components.VelocityComponent](em, s.player)
	if !ok {
		return
	}

	vel.VX, vel.VY = 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		vel.VX = -playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		vel.VX = playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		vel.VY = -playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		vel.VY = playerSpeed
	}

	// 朝向翻转
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, s.player); ok {
		if vel.VX < 0 {
			sprite.FlipX = true
		} else if vel.VX > 0 {
			sprite.FlipX = false
		}
	}

	// 镜头跟随角色
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, s.player); ok {
		s.app.CameraSystem().JumpTo(pos.X, pos.Y)
	}

	// 空格触发震屏
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.app.CameraSystem().AddTrauma(0.4)
	}

	// 点击/触摸在对应的世界位置放一块石头
	if clicked, sx, sy := utils.IsJustTouchedOrClicked(); clicked {
		s.spawnRock(s.screenToWorld(float64(sx), float64(sy)))
	}
}

// screenToWorld 屏幕坐标转世界坐标（忽略震屏偏移）
func (s *demoScene) screenToWorld(sx, sy float64) (float64, float64) {
	gs := s.app.GameState()
	zoom := gs.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	wx := gs.CameraX + (sx-screenWidth/2)/zoom
	wy := gs.CameraY + (sy-screenHeight/2)/zoom
	return wx, wy
}

// spawnRock 在指定世界位置创建一个静态装饰实体
func (s *demoScene) spawnRock(x, y float64) {
	em := s.app.EntityManager()

	rock := em.CreateEntity()
	ecs.AddComponent(em, rock, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, rock, &components.SpriteComponent{
		Image:   s.rockImage,
		AnchorX: 0.5,
		AnchorY: 1.0,
		Visible: true,
	})
	ecs.AddComponent(em, rock, &components.YSortStaticComponent{})
}

// Draw 实现 game.Scene，画背景色（实体由渲染系统绘制）
func (s *demoScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x8a, G: 0xb8, B: 0x60, A: 0xff})
}

// 编译期检查场景接口实现
var _ game.Scene = (*demoScene)(nil)

// solidSprite 创建纯色占位贴图
func solidSprite(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

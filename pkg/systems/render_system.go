package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/topdown/pkg/components"
	"github.com/gonewx/topdown/pkg/ecs"
	"github.com/gonewx/topdown/pkg/game"
)

// 阴影基础贴图的直径（像素），绘制时按需缩放
const shadowBaseSize = 64

// RenderSystem 渲染系统
// 负责按深度顺序绘制所有精灵实体，并在实体脚下绘制椭圆形阴影。
//
// 绘制顺序：
//  1. 所有阴影（始终位于精灵之下）
//  2. 精灵，按 PositionComponent.Z 从小到大
//
// 深度相同时按 Y 坐标排序（上方的实体先绘制，下方的后绘制会正确遮挡），
// Y 也相同时按 X 从大到小（右侧先绘制），避免重叠实体的渲染闪烁
type RenderSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState

	// 屏幕逻辑尺寸（像素）
	screenW float64
	screenH float64

	// 阴影基础贴图（白色实心圆，绘制时缩放并乘以颜色）
	shadowImage *ebiten.Image
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - gs: 全局游戏状态（读取镜头位置/缩放/震动）
//   - screenW, screenH: 屏幕逻辑尺寸（像素）
func NewRenderSystem(em *ecs.EntityManager, gs *game.GameState, screenW, screenH int) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		gameState:     gs,
		screenW:       float64(screenW),
		screenH:       float64(screenH),
	}
}

// Draw 绘制一帧：先阴影后精灵
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	cameraGeoM := rs.cameraGeoM()

	rs.drawShadows(screen, cameraGeoM)
	rs.drawSprites(screen, cameraGeoM)
}

// cameraGeoM 构造世界坐标到屏幕坐标的变换
// 镜头位置（含震动偏移）映射到屏幕中心，支持缩放和震屏旋转
func (rs *RenderSystem) cameraGeoM() ebiten.GeoM {
	var geoM ebiten.GeoM
	geoM.Translate(
		-(rs.gameState.CameraX + rs.gameState.ShakeOffsetX),
		-(rs.gameState.CameraY + rs.gameState.ShakeOffsetY),
	)
	geoM.Rotate(rs.gameState.ShakeRoll)

	zoom := rs.gameState.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	geoM.Scale(zoom, zoom)

	geoM.Translate(rs.screenW/2, rs.screenH/2)
	return geoM
}

// drawShadows 绘制所有阴影
func (rs *RenderSystem) drawShadows(screen *ebiten.Image, cameraGeoM ebiten.GeoM) {
	entities := ecs.GetEntitiesWith2[
		*components.ShadowComponent,
		*components.PositionComponent,
	](rs.entityManager)

	for _, id := range entities {
		shadow, _ := ecs.GetComponent[*components.ShadowComponent](rs.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.entityManager, id)

		if shadow.Width <= 0 || shadow.Height <= 0 || shadow.Alpha <= 0 {
			continue
		}

		img := rs.ensureShadowImage()

		opts := &ebiten.DrawImageOptions{}
		// 把基础圆形缩放成目标椭圆，锚点为椭圆中心
		opts.GeoM.Translate(-shadowBaseSize/2, -shadowBaseSize/2)
		opts.GeoM.Scale(shadow.Width/shadowBaseSize, shadow.Height/shadowBaseSize)
		opts.GeoM.Translate(pos.X+shadow.OffsetX, pos.Y+shadow.OffsetY)
		opts.GeoM.Concat(cameraGeoM)

		// 黑色半透明
		opts.ColorScale.Scale(0, 0, 0, 1)
		opts.ColorScale.ScaleAlpha(shadow.Alpha)

		screen.DrawImage(img, opts)
	}
}

// drawSprites 按深度顺序绘制所有精灵
func (rs *RenderSystem) drawSprites(screen *ebiten.Image, cameraGeoM ebiten.GeoM) {
	entities := ecs.GetEntitiesWith2[
		*components.SpriteComponent,
		*components.PositionComponent,
	](rs.entityManager)

	rs.sortByDepth(entities)

	for _, id := range entities {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](rs.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.entityManager, id)

		if !sprite.Visible || sprite.Image == nil {
			continue
		}

		w := float64(sprite.Image.Bounds().Dx())
		h := float64(sprite.Image.Bounds().Dy())

		opts := &ebiten.DrawImageOptions{}
		// 锚点对齐到实体位置
		opts.GeoM.Translate(-sprite.AnchorX*w, -sprite.AnchorY*h)
		if sprite.FlipX {
			opts.GeoM.Scale(-1, 1)
		}
		opts.GeoM.Translate(pos.X, pos.Y)
		opts.GeoM.Concat(cameraGeoM)

		screen.DrawImage(sprite.Image, opts)
	}
}

// sortByDepth 按深度对实体排序（原地）
// 主排序：Z 从小到大；Z 相同时按 Y 从小到大；
// Y 也相同时按 X 从大到小（右侧先绘制，符合透视遮挡习惯）
func (rs *RenderSystem) sortByDepth(entities []ecs.EntityID) {
	sort.Slice(entities, func(i, j int) bool {
		posI, okI := ecs.GetComponent[*components.PositionComponent](rs.entityManager, entities[i])
		posJ, okJ := ecs.GetComponent[*components.PositionComponent](rs.entityManager, entities[j])
		if !okI || !okJ {
			return okJ
		}

		if posI.Z != posJ.Z {
			return posI.Z < posJ.Z
		}
		if posI.Y != posJ.Y {
			return posI.Y < posJ.Y
		}
		return posI.X > posJ.X
	})
}

// ensureShadowImage 延迟创建阴影基础贴图
func (rs *RenderSystem) ensureShadowImage() *ebiten.Image {
	if rs.shadowImage == nil {
		rs.shadowImage = ebiten.NewImage(shadowBaseSize, shadowBaseSize)
		vector.DrawFilledCircle(
			rs.shadowImage,
			shadowBaseSize/2, shadowBaseSize/2, shadowBaseSize/2,
			color.White, true,
		)
	}
	return rs.shadowImage
}

package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 精灵组件
// 存储实体的静态贴图及绘制参数
type SpriteComponent struct {
	// Image 贴图
	Image *ebiten.Image

	// AnchorX, AnchorY 锚点（0.0-1.0，相对于贴图尺寸）
	// 绘制时锚点对齐到实体位置。典型值: (0.5, 1.0) 表示底部中心，
	// 俯视角下实体的"脚底"落在其世界坐标上
	AnchorX float64
	AnchorY float64

	// FlipX 是否水平翻转（用于朝向）
	FlipX bool

	// Visible 是否可见，false 时跳过绘制
	Visible bool
}

package components

// PositionComponent 位置组件
// 存储实体在世界坐标系中的位置
type PositionComponent struct {
	// X 世界坐标X（像素）
	X float64

	// Y 世界坐标Y（像素），俯视角下代表画面深度：
	// Y 越大表示越靠近屏幕下方（越"近"）
	Y float64

	// Z 渲染深度值，决定绘制顺序（Z 越大越晚绘制，即显示在越上层）
	// 拥有 YSort 系列组件的实体每帧由 YSortSystem 覆写此值，
	// 不要手动修改；没有 YSort 组件时可手动设置固定层级
	Z float64
}

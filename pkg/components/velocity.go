package components

// VelocityComponent 速度组件
// PhysicsSystem 每帧将速度积分到 PositionComponent
type VelocityComponent struct {
	// VX 水平速度（像素/秒）
	VX float64

	// VY 垂直速度（像素/秒）
	VY float64
}

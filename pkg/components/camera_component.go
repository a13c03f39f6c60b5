package components

// CameraComponent 镜头组件
// 存储镜头的目标位置、移动动画和震屏状态
// 由 CameraSystem 创建和更新，每个世界只应存在一个镜头实体
type CameraComponent struct {
	// TargetX, TargetY 目标位置（世界坐标）
	TargetX float64
	TargetY float64

	// AnimationSpeed 移动动画速度（像素/秒）
	AnimationSpeed float64

	// IsAnimating 是否正在移动动画中
	IsAnimating bool

	// StartX, StartY 动画起点（用于缓动进度计算）
	StartX float64
	StartY float64

	// TotalDistance 动画总距离（用于缓动进度计算）
	TotalDistance float64

	// ===== 震屏状态（trauma 模型）=====

	// Trauma 当前创伤值 (0.0-1.0)
	// 震动幅度与 Trauma² 成正比，随时间线性衰减
	Trauma float64

	// ShakeSeed 噪声种子，在 Trauma 从 0 变为正值时重新取样
	ShakeSeed float64

	// ShakeTime 震动噪声的采样进度（秒）
	ShakeTime float64

	// NoiseStrength 噪声采样频率系数
	NoiseStrength float64

	// TranslationShakeStrength 位移震动强度（像素）
	TranslationShakeStrength float64

	// RotationShakeStrength 旋转震动强度（度）
	RotationShakeStrength float64

	// ===== 边界限制 =====

	// HasBounds 是否启用边界限制
	HasBounds bool

	// BoundsMinX, BoundsMinY, BoundsMaxX, BoundsMaxY 镜头可视区域边界（世界坐标）
	BoundsMinX float64
	BoundsMinY float64
	BoundsMaxX float64
	BoundsMaxY float64

	// Zoom 缩放倍率（1.0 为原始大小），由 CameraSystem 钳制范围
	Zoom float64
}

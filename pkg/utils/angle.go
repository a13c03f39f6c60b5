package utils

import "math"

// AngleFromVector 计算方向向量相对 X 轴正方向的旋转角（弧度）
// 零向量返回 0（不旋转）
//
// 典型用法：根据移动方向旋转贴图
//
//	opts.GeoM.Rotate(utils.AngleFromVector(vel.VX, vel.VY))
func AngleFromVector(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

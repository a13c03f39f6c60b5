package utils

import "math"

// ValueNoise1D 一维平滑值噪声
//
// 用于镜头震动等需要连续随机偏移的场景：
// 相邻的 x 采样返回连续变化的值，不同的 seed 产生互不相关的序列。
// 返回值近似落在 [-1, 1] 区间，且对相同输入完全确定
//
// 参数:
//   - x: 采样位置
//   - seed: 噪声种子
//
// 返回:
//   - 平滑噪声值 ∈ [-1, 1]
func ValueNoise1D(x, seed float64) float64 {
	i := math.Floor(x)
	f := x - i

	// 平滑插值因子（smoothstep），避免格点处的折角
	u := f * f * (3 - 2*f)

	a := latticeValue(i, seed)
	b := latticeValue(i+1, seed)

	return a + (b-a)*u
}

// latticeValue 返回整数格点上的确定性伪随机值 ∈ [-1, 1]
func latticeValue(i, seed float64) float64 {
	// 经典的 fract(sin(n)*K) 散列：便宜、确定、分布足够均匀
	n := math.Sin(i*127.1+seed*311.7) * 43758.5453123
	return 2*(n-math.Floor(n)) - 1
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShadowSize 阴影尺寸配置
type ShadowSize struct {
	Width  float64 `yaml:"width"`  // 阴影宽度（像素）
	Height float64 `yaml:"height"` // 阴影高度（像素）
}

// shadowSizes 各类型实体的阴影尺寸注册表
// 由宿主游戏通过 RegisterShadowSize 或 LoadShadowSizes 填充
var shadowSizes = map[string]ShadowSize{}

// DefaultShadowSize 默认阴影尺寸（未注册的类型使用）
var DefaultShadowSize = ShadowSize{Width: 55, Height: 28}

// DefaultShadowAlpha 默认阴影透明度
// 值为 0.65，即 65% 透明度
const DefaultShadowAlpha float32 = 0.65

// RegisterShadowSize 注册指定类型实体的阴影尺寸
// 重复注册会覆盖旧值
//
// 参数:
//   - entityType: 实体类型字符串（如 "player", "slime"）
//   - size: 阴影尺寸
func RegisterShadowSize(entityType string, size ShadowSize) {
	shadowSizes[entityType] = size
}

// GetShadowSize 获取指定类型实体的阴影尺寸
//
// 参数:
//   - entityType: 实体类型字符串
//
// 返回:
//   - 对应的阴影尺寸，如果未注册则返回默认尺寸
func GetShadowSize(entityType string) ShadowSize {
	if size, ok := shadowSizes[entityType]; ok {
		return size
	}
	return DefaultShadowSize
}

// ShadowSizeCount 返回已注册的阴影尺寸数量
func ShadowSizeCount() int {
	return len(shadowSizes)
}

// ResetShadowSizes 清空阴影尺寸注册表（主要用于测试）
func ResetShadowSizes() {
	shadowSizes = map[string]ShadowSize{}
}

// LoadShadowSizes 从 yaml 文件批量注册阴影尺寸
//
// 文件格式:
//
//	player: {width: 50, height: 25}
//	slime:  {width: 40, height: 20}
//
// 参数:
//   - path: yaml 配置文件路径
//
// 返回:
//   - int: 本次注册的条目数
//   - error: 读取/解析/校验错误
func LoadShadowSizes(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read shadow sizes: %w", err)
	}

	var loaded map[string]ShadowSize
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return 0, fmt.Errorf("failed to unmarshal shadow sizes: %w", err)
	}

	for entityType, size := range loaded {
		if size.Width <= 0 || size.Height <= 0 {
			return 0, fmt.Errorf("shadow size for %q must be positive, got %vx%v",
				entityType, size.Width, size.Height)
		}
	}

	for entityType, size := range loaded {
		RegisterShadowSize(entityType, size)
	}
	return len(loaded), nil
}

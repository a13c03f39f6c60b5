package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 深度排序与镜头/音频的默认调参值
//
// 这些默认值来自大量俯视角项目的实际手感调整，
// 宿主游戏可通过 tuning.yaml 覆盖

// YSortScale 深度值缩放系数
// Y 坐标差乘以此系数得到渲染深度 Z。
// 深度值需要保持在很小的区间内：系数太小会因浮点精度丢失排序信息，
// 太大则在大地图上深度差会超出渲染可用区间
const YSortScale = 0.0001

// DefaultMaxSpatialDistance 空间音频最大可闻距离（像素）
// 超过此距离的声源完全静音
const DefaultMaxSpatialDistance = 250.0

// DefaultGlobalVolume 默认全局音量
const DefaultGlobalVolume = 0.5

// 镜头默认参数
const (
	// DefaultCameraSpeed 镜头移动默认速度（像素/秒）
	DefaultCameraSpeed = 300.0

	// DefaultNoiseStrength 震屏噪声采样频率系数
	DefaultNoiseStrength = 10.0

	// DefaultTranslationShakeStrength 震屏位移强度（像素）
	DefaultTranslationShakeStrength = 15.0

	// DefaultRotationShakeStrength 震屏旋转强度（度）
	DefaultRotationShakeStrength = 2.5

	// MinZoom, MaxZoom 镜头缩放钳制范围
	MinZoom = 1.0
	MaxZoom = 10.0
)

// TuningConfig 库的全局调参配置
// 所有字段都有合理默认值，yaml 文件中缺失的字段保持默认
type TuningConfig struct {
	// YSortScale 深度值缩放系数
	YSortScale float64 `yaml:"ysortScale"`

	// Camera 镜头参数
	Camera CameraTuning `yaml:"camera"`

	// Audio 音频参数
	Audio AudioTuning `yaml:"audio"`

	// Shadow 阴影默认参数
	Shadow ShadowTuning `yaml:"shadow"`
}

// CameraTuning 镜头调参
type CameraTuning struct {
	Speed                    float64 `yaml:"speed"`                    // 移动速度（像素/秒）
	NoiseStrength            float64 `yaml:"noiseStrength"`            // 噪声采样频率系数
	TranslationShakeStrength float64 `yaml:"translationShakeStrength"` // 位移震动强度（像素）
	RotationShakeStrength    float64 `yaml:"rotationShakeStrength"`    // 旋转震动强度（度）
}

// AudioTuning 音频调参
type AudioTuning struct {
	GlobalVolume       float64 `yaml:"globalVolume"`       // 全局音量 0.0 ~ 1.0
	MaxSpatialDistance float64 `yaml:"maxSpatialDistance"` // 空间音频最大可闻距离（像素）
}

// ShadowTuning 阴影调参
type ShadowTuning struct {
	Width  float64 `yaml:"width"`  // 默认阴影宽度（像素）
	Height float64 `yaml:"height"` // 默认阴影高度（像素）
	Alpha  float32 `yaml:"alpha"`  // 默认阴影透明度 0.0 ~ 1.0
}

// DefaultTuningConfig 返回默认调参配置
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		YSortScale: YSortScale,
		Camera: CameraTuning{
			Speed:                    DefaultCameraSpeed,
			NoiseStrength:            DefaultNoiseStrength,
			TranslationShakeStrength: DefaultTranslationShakeStrength,
			RotationShakeStrength:    DefaultRotationShakeStrength,
		},
		Audio: AudioTuning{
			GlobalVolume:       DefaultGlobalVolume,
			MaxSpatialDistance: DefaultMaxSpatialDistance,
		},
		Shadow: ShadowTuning{
			Width:  DefaultShadowSize.Width,
			Height: DefaultShadowSize.Height,
			Alpha:  DefaultShadowAlpha,
		},
	}
}

// LoadTuningConfig 从 yaml 文件加载调参配置
//
// 文件中缺失的字段保持默认值。加载或校验失败时返回错误，
// 调用方可选择忽略错误继续使用默认配置
//
// 参数:
//   - path: yaml 配置文件路径
//
// 返回:
//   - *TuningConfig: 配置实例（出错时为 nil）
//   - error: 读取/解析/校验错误
func LoadTuningConfig(path string) (*TuningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning config: %w", err)
	}

	cfg := DefaultTuningConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tuning config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate 校验配置值的合法性
func (c *TuningConfig) Validate() error {
	if c.YSortScale <= 0 {
		return fmt.Errorf("ysortScale must be positive, got %v", c.YSortScale)
	}
	if c.Audio.GlobalVolume < 0 || c.Audio.GlobalVolume > 1 {
		return fmt.Errorf("audio.globalVolume must be in [0, 1], got %v", c.Audio.GlobalVolume)
	}
	if c.Audio.MaxSpatialDistance <= 0 {
		return fmt.Errorf("audio.maxSpatialDistance must be positive, got %v", c.Audio.MaxSpatialDistance)
	}
	if c.Camera.Speed <= 0 {
		return fmt.Errorf("camera.speed must be positive, got %v", c.Camera.Speed)
	}
	if c.Shadow.Alpha < 0 || c.Shadow.Alpha > 1 {
		return fmt.Errorf("shadow.alpha must be in [0, 1], got %v", c.Shadow.Alpha)
	}
	return nil
}

package particle

import (
	"math"

	"github.com/decker502/tearoom/pkg/math3d"
)

// Seed 是一次性生成的粒子初始参数
//
// 场景挂载时生成，之后只读；每帧动画基于 Seed 计算变换。
type Seed struct {
	Position math3d.Vec3 // 初始位置（相对簇中心所在的父节点）
	Size     float64     // 基础尺寸（球半径，米）
	Opacity  float64     // 基础不透明度 0-1
	Speed    float64     // 动画速度乘数
	Phase    float64     // 动画相位偏移 [0, 2π)
}

// RingLayer 描述一层环形粒子簇
//
// 第 i 个粒子的角度 = i/Count·2π + U[0, AngleJitter)，
// 半径 = U[0, Radius)·U[RadiusJitter]，高度 = Height + U[-HeightJitter, HeightJitter)。
type RingLayer struct {
	Height       float64
	Count        int
	Radius       float64
	RadiusJitter Range
	AngleJitter  float64
	HeightJitter float64
	Size         Range
	Opacity      Range
	Speed        Range
}

// MaxRadius 返回该层粒子距中心轴的最大水平距离
func (l RingLayer) MaxRadius() float64 {
	return l.Radius * l.RadiusJitter.Max
}

// SampleRingLayer 按层配置生成粒子，中心轴位于 center
func SampleRingLayer(rng Rand, center math3d.Vec3, l RingLayer) []Seed {
	seeds := make([]Seed, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		angle := float64(i)/float64(l.Count)*2*math.Pi + RandomInRange(rng, 0, l.AngleJitter)
		radius := RandomInRange(rng, 0, l.Radius) * l.RadiusJitter.Sample(rng)
		y := l.Height + RandomInRange(rng, -l.HeightJitter, l.HeightJitter)

		seeds = append(seeds, Seed{
			Position: math3d.V3(center.X+math.Cos(angle)*radius, center.Y+y, center.Z+math.Sin(angle)*radius),
			Size:     l.Size.Sample(rng),
			Opacity:  l.Opacity.Sample(rng),
			Speed:    l.Speed.Sample(rng),
			Phase:    RandomInRange(rng, 0, 2*math.Pi),
		})
	}
	return seeds
}

// Spiral 描述沿中心轴盘旋上升的粒子带
//
// 第 i 个粒子（t = i/Count）：角度 t·Turns·2π，高度 t·Height，
// 半径 RadiusStart + t·RadiusGrowth。
type Spiral struct {
	Count        int
	Turns        float64
	Height       float64
	RadiusStart  float64
	RadiusGrowth float64
	Size         Range
	Opacity      Range
	Speed        Range
}

// SampleSpiral 生成螺旋粒子；位置是确定性的，尺寸等属性随机
func SampleSpiral(rng Rand, center math3d.Vec3, s Spiral) []Seed {
	seeds := make([]Seed, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		t := float64(i) / float64(s.Count)
		angle := t * s.Turns * 2 * math.Pi
		radius := s.RadiusStart + t*s.RadiusGrowth

		seeds = append(seeds, Seed{
			Position: math3d.V3(center.X+math.Cos(angle)*radius, center.Y+t*s.Height, center.Z+math.Sin(angle)*radius),
			Size:     s.Size.Sample(rng),
			Opacity:  s.Opacity.Sample(rng),
			Speed:    s.Speed.Sample(rng),
			Phase:    RandomInRange(rng, 0, 2*math.Pi),
		})
	}
	return seeds
}

// SampleBox 在以 center 为中心、尺寸为 extent 的盒子内均匀生成粒子（闪光粒子）
func SampleBox(rng Rand, center, extent math3d.Vec3, count int, size, opacity, speed Range) []Seed {
	seeds := make([]Seed, 0, count)
	for i := 0; i < count; i++ {
		offset := math3d.V3(
			RandomInRange(rng, -extent.X/2, extent.X/2),
			RandomInRange(rng, -extent.Y/2, extent.Y/2),
			RandomInRange(rng, -extent.Z/2, extent.Z/2),
		)
		seeds = append(seeds, Seed{
			Position: center.Add(offset),
			Size:     size.Sample(rng),
			Opacity:  opacity.Sample(rng),
			Speed:    speed.Sample(rng),
			Phase:    RandomInRange(rng, 0, 2*math.Pi),
		})
	}
	return seeds
}

package entities

import (
	"image/color"

	"github.com/decker502/tearoom/internal/particle"
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// sparkleSizeUnit 闪光尺寸 1 对应的半径（米）
const sparkleSizeUnit = 0.01

// particleSpec 一批粒子共享的运动参数
type particleSpec struct {
	Color         color.RGBA
	Motion        components.ParticleMotion
	Center        math3d.Vec3
	OrbitRate     float64
	FloatPerFrame float64
	Layer         int
}

// spawnParticles 把采样结果实例化为粒子实体
func (b builder) spawnParticles(parent ecs.EntityID, seeds []particle.Seed, spec particleSpec) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(seeds))
	for _, s := range seeds {
		id := b.group(parent, s.Position)
		ecs.AddComponent(b.em, id, &components.DecorativeParticleComponent{
			BasePosition:  s.Position,
			BaseSize:      s.Size,
			Opacity:       s.Opacity,
			Color:         spec.Color,
			Phase:         s.Phase,
			Speed:         s.Speed,
			Motion:        spec.Motion,
			Center:        spec.Center,
			OrbitRate:     spec.OrbitRate,
			FloatPerFrame: spec.FloatPerFrame,
			Layer:         spec.Layer,
		})
		ecs.AddComponent(b.em, id, &components.ParticleVisualComponent{
			Size:    s.Size,
			Opacity: s.Opacity,
		})
		ids = append(ids, id)
	}
	return ids
}

// sparkles 在盒子内生成闪光
//
// 参数:
//   - extent: 盒子尺寸
//   - size: 闪光尺寸（1 ≈ 0.01 米）
//   - opacity: 基础不透明度
//   - speed: 漂移速度
func (b builder) sparkles(rng particle.Rand, parent ecs.EntityID, extent math3d.Vec3, count int, size, opacity, speed float64, c string) []ecs.EntityID {
	r := size * sparkleSizeUnit
	seeds := particle.SampleBox(rng, math3d.Vec3{}, extent, count,
		particle.Range{Min: r * 0.6, Max: r},
		particle.Fixed(opacity),
		particle.Range{Min: speed * 0.5, Max: speed * 1.5},
	)
	return b.spawnParticles(parent, seeds, particleSpec{
		Color:  hex(c),
		Motion: components.MotionSparkle,
		Layer:  -1,
	})
}

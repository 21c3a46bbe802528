package entities

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/tearoom/internal/particle"
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// 叠加层粒子动画参数
const (
	// LayerOrbitRate 分层粒子公转角速度（弧度/秒），原为每帧 0.0015
	LayerOrbitRate = 0.0015 * 60
	// SpiralOrbitRate 螺旋粒子公转角速度（弧度/秒）
	SpiralOrbitRate = LayerOrbitRate * 2

	LayerFloatPerFrame  = 0.0015
	SpiralFloatPerFrame = 0.002

	// 扩散波纹：w = ½sin(2t - delay) + ½
	WaveRingFrequency = 2.0
	WaveRingGrowth    = 0.3
	WaveRingOpacity   = 0.4

	// LinePulseFrequency 连接线明暗频率
	LinePulseFrequency = 1.8
)

// NewDataOverlay 挂载数据叠加层子树
//
// 布局由 gate.Seed 决定：同一门控每次挂载得到完全相同的粒子云。
// 返回子树根实体（带 OverlayRootComponent）。
func NewDataOverlay(em *ecs.EntityManager, gate *components.OverlayGateComponent) ecs.EntityID {
	b := builder{em: em}
	def := gate.Def
	rng := rand.New(rand.NewSource(gate.Seed))

	root := b.group(gate.Parent, gate.Anchor)
	ecs.AddComponent(em, root, &components.OverlayRootComponent{Name: gate.Name})

	// 底座：网格、圆盘、扩散波纹
	b.mesh(root, math3d.V3(0, -0.01, 0), flat,
		components.MeshComponent{Shape: components.ShapeGrid, Size: math3d.V3(2.5, 2.5, 0), Segments: 16},
		basic("#c4a574", 0.2))
	disc := basic("#2d2420", 0.4)
	disc.Emissive = hex("#d4a574")
	disc.EmissiveIntensity = 0.1
	b.mesh(root, math3d.V3(0, -0.02, 0), flat,
		components.MeshComponent{Shape: components.ShapeCircle, Radius: 1.2, Segments: 48}, disc)

	w := def.WaveRings
	for i := 0; i < w.Count; i++ {
		r := w.BaseRadius + float64(i)*w.Step
		c := pickColor(w.Colors, i)
		scaler := b.group(root, math3d.V3(0, 0.01, 0))
		ring := b.mesh(scaler, math3d.Vec3{}, flat, ringShape(r, r+0.03, 48), components.MaterialComponent{Color: c, Opacity: 0.3, Unlit: true, DoubleSided: true})
		// 波纹向外扩张时淡出：scale = 1+0.3w，opacity = 0.4(1-w)
		phase := -float64(i) * w.DelayStep
		b.pulse(ring, 0, 0, components.PulseChannel{Property: components.PulseOpacity, Base: 0, Amplitude: WaveRingOpacity, Frequency: WaveRingFrequency, Phase: phase, Invert: true})
		b.pulse(scaler, 0, 0, components.PulseChannel{Property: components.PulseScaleXZ, Base: 1, Amplitude: WaveRingGrowth, Frequency: WaveRingFrequency, Phase: phase})
	}

	// 分层粒子与连接线
	for i := range def.Layers {
		layer := def.RingLayer(i)
		c := def.Layers[i].Color.RGBA
		seeds := particle.SampleRingLayer(rng, math3d.Vec3{}, layer)
		b.spawnParticles(root, seeds, particleSpec{
			Color:         c,
			Motion:        components.MotionLayerOrbit,
			OrbitRate:     LayerOrbitRate,
			FloatPerFrame: LayerFloatPerFrame,
			Layer:         i,
		})
		b.connections(rng, root, seeds, layer, c)

		scaler := b.group(root, math3d.V3(0, layer.Height, 0))
		ring := b.mesh(scaler, math3d.Vec3{}, flat, ringShape(layer.Radius, layer.Radius+0.02, 48), components.MaterialComponent{Color: c, Opacity: 0.25, Unlit: true, DoubleSided: true})
		phase := float64(i) * 0.4
		b.pulse(ring, 0, 0, components.PulseChannel{Property: components.PulseOpacity, Base: 0.25, Amplitude: 0.25, Frequency: 2, Phase: phase})
		b.pulse(scaler, 0, 0, components.PulseChannel{Property: components.PulseScaleXZ, Base: 1, Amplitude: 0.1, Frequency: 2, Phase: phase})
	}

	// 螺旋带：每 AccentEvery 个粒子用强调色
	spiral := def.SpiralLayout()
	for i, s := range particle.SampleSpiral(rng, math3d.Vec3{}, spiral) {
		c := pickColor(def.Spiral.Colors, 1)
		if def.Spiral.AccentEvery > 0 && i%def.Spiral.AccentEvery == 0 {
			c = pickColor(def.Spiral.Colors, 0)
		}
		b.spawnParticles(root, []particle.Seed{s}, particleSpec{
			Color:         c,
			Motion:        components.MotionSpiralOrbit,
			OrbitRate:     SpiralOrbitRate,
			FloatPerFrame: SpiralFloatPerFrame,
			Layer:         -1,
		})
	}

	b.addMarker(root)

	panel := b.group(root, math3d.V3(0, 1.7, 0))
	ecs.AddComponent(em, panel, &components.StatPanelComponent{Lines: headerLines(def)})

	b.pointLight(root, math3d.V3(0, 1.5, 0), "#ffd4a3", 1.5, 4)
	b.pointLight(root, math3d.V3(0, 0.7, 0), "#ff6b35", 2, 2.5)
	b.pointLight(root, math3d.V3(0.5, 0.5, 0.5), "#4a9eff", 1.2, 2)
	b.pointLight(root, math3d.V3(-0.5, 0.5, -0.5), "#ff8c42", 1.2, 2)

	return root
}

// connections 生成从中心到粒子、以及相邻角度之间的连接线
func (b builder) connections(rng particle.Rand, root ecs.EntityID, seeds []particle.Seed, layer particle.RingLayer, c color.RGBA) {
	center := math3d.V3(0, 0.02, 0)
	for i, s := range seeds {
		if rng.Float64() > 0.75 {
			b.line(root, center, s.Position, c, 0.15+rng.Float64()*0.25, rng.Float64()*2*math.Pi)
		}
		// 最后一个粒子没有下一个角度
		if i%15 == 0 && i < layer.Count-1 {
			angle := float64(i+1) / float64(layer.Count) * 2 * math.Pi
			r := rng.Float64() * layer.Radius
			to := math3d.V3(math.Cos(angle)*r, layer.Height, math.Sin(angle)*r)
			b.line(root, s.Position, to, c, 0.08+rng.Float64()*0.12, rng.Float64()*2*math.Pi)
		}
	}
}

// line 创建一条随时间明暗变化的连接线，phase 错开各条线的明暗节奏
func (b builder) line(parent ecs.EntityID, from, to math3d.Vec3, c color.RGBA, opacity, phase float64) ecs.EntityID {
	id := b.group(parent, math3d.Vec3{})
	ecs.AddComponent(b.em, id, &components.LineComponent{From: from, To: to, Color: c})
	ecs.AddComponent(b.em, id, &components.MaterialComponent{Color: c, Opacity: opacity, Unlit: true})
	b.pulse(id, 0, 0, components.PulseChannel{
		Property:  components.PulseOpacity,
		Base:      opacity * 0.4,
		Amplitude: opacity * 0.6,
		Frequency: LinePulseFrequency,
		Phase:     phase,
	})
	return id
}

// addMarker 中心标记：底座上的发光圆柱和光环（装饰）
func (b builder) addMarker(root ecs.EntityID) {
	b.mesh(root, math3d.V3(0, 0.08, 0), math3d.Vec3{}, cylinderShape(0.1, 0.1, 0.12, 32), standard("#ff6b35", "#ff6b35", 0.7))
	b.mesh(root, math3d.V3(0, 0.02, 0), flat, ringShape(0.11, 0.16, 32), basic("#ff6b35", 0.4))
}

// headerLines 标题、副标题和统计行
func headerLines(def *config.OverlayConfig) []components.StatLine {
	var lines []components.StatLine
	if def.Title != "" {
		lines = append(lines, components.StatLine{Text: def.Title, Color: hex("#ffd4a3"), Size: 0.13})
	}
	if def.Subtitle != "" {
		lines = append(lines, components.StatLine{Text: def.Subtitle, Color: hex("#ffffff"), Size: 0.09, OffsetY: -0.15})
	}
	return append(lines, statLines(def.Stats)...)
}

func statLines(cfg []config.StatLineConfig) []components.StatLine {
	lines := make([]components.StatLine, 0, len(cfg))
	for _, l := range cfg {
		lines = append(lines, components.StatLine{
			Text:    l.Text,
			Color:   l.Color.RGBA,
			Size:    l.Size,
			OffsetY: l.OffsetY,
		})
	}
	return lines
}

// pickColor 循环取色，列表为空时为白色
func pickColor(colors []config.Color, i int) color.RGBA {
	if len(colors) == 0 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return colors[i%len(colors)].RGBA
}

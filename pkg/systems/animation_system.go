package systems

import (
	"math"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/utils"
)

// 闪光粒子的漂移与闪烁参数
const (
	sparkleDriftAmplitude = 0.08
	sparkleBobAmplitude   = 0.05
	sparkleTwinkleFreq    = 3.0
)

// 叠加层粒子的呼吸频率
const particlePulseFreq = 2.5

// AnimationSystem 逐帧动画
//
// 所有属性都由 elapsed 直接计算：同一 elapsed 调用多次结果相同。
// 执行顺序：交互配色 → 脉动（覆盖配色中的对应属性）→ 粒子 → 茶具 → 可见性门控。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{entityManager: em}
}

// Update 按 elapsed（秒）写入 Transform / Material / Light / ParticleVisual
func (s *AnimationSystem) Update(elapsed float64) {
	s.updateHighlights()
	s.updatePulses(elapsed)
	s.updateParticles(elapsed)
	s.updateTeaware(elapsed)
	s.updateVisibility()
}

func (s *AnimationSystem) updateHighlights() {
	for _, id := range ecs.GetEntitiesWith2[*components.HighlightComponent, *components.MaterialComponent](s.entityManager) {
		hl, _ := ecs.GetComponent[*components.HighlightComponent](s.entityManager, id)
		mat, _ := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id)

		tint := hl.Idle
		if GateOpen(s.entityManager, hl.Source, hl.Mode) {
			tint = hl.Hover
		}
		mat.Color = tint.Color
		mat.Emissive = tint.Emissive
		mat.EmissiveIntensity = tint.EmissiveIntensity
		mat.Opacity = tint.Opacity
	}
}

func (s *AnimationSystem) updatePulses(elapsed float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.PulseComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.PulseComponent](s.entityManager, id)
		active := p.Gate == 0 || GateOpen(s.entityManager, p.Gate, components.GateWhileHovered)

		for _, ch := range p.Channels {
			value := p.Rest
			if ch.Property == components.PulseScaleXZ {
				value = 1
			}
			if active {
				w := utils.Pulse01(elapsed, ch.Frequency, ch.Phase)
				if ch.Invert {
					w = 1 - w
				}
				value = ch.Base + ch.Amplitude*w
			}
			s.applyPulse(id, ch.Property, value)
		}
	}
}

func (s *AnimationSystem) applyPulse(id ecs.EntityID, prop components.PulseProperty, value float64) {
	switch prop {
	case components.PulseEmissive:
		if mat, ok := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id); ok {
			mat.EmissiveIntensity = value
		}
	case components.PulseOpacity:
		if mat, ok := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id); ok {
			mat.Opacity = utils.Clamp(value, 0, 1)
		}
	case components.PulseLightIntensity:
		if l, ok := ecs.GetComponent[*components.LightComponent](s.entityManager, id); ok {
			l.Intensity = value
		}
	case components.PulseScaleXZ:
		if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
			tr.Scale.X = value
			tr.Scale.Z = value
		}
	}
}

func (s *AnimationSystem) updateParticles(elapsed float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.TransformComponent, *components.DecorativeParticleComponent, *components.ParticleVisualComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		p, _ := ecs.GetComponent[*components.DecorativeParticleComponent](s.entityManager, id)
		vis, _ := ecs.GetComponent[*components.ParticleVisualComponent](s.entityManager, id)
		animateParticle(p, tr, vis, elapsed)
	}
}

// animateParticle 计算粒子在 elapsed 时刻的位置与可见属性
func animateParticle(p *components.DecorativeParticleComponent, tr *components.TransformComponent, vis *components.ParticleVisualComponent, elapsed float64) {
	switch p.Motion {
	case components.MotionSparkle:
		dx, dz := utils.Drift(elapsed, sparkleDriftAmplitude, p.Speed, p.Phase)
		dy := sparkleBobAmplitude * math.Sin(p.Speed*elapsed*1.3+p.Phase)
		tr.Position = p.BasePosition
		tr.Position.X += dx
		tr.Position.Y += utils.Finite(dy, 0)
		tr.Position.Z += dz

		w := utils.Pulse01(elapsed, sparkleTwinkleFreq*p.Speed, p.Phase)
		vis.Size = p.BaseSize
		vis.Opacity = p.Opacity * (0.4 + 0.6*w)
		vis.Emissive = 1

	default:
		pos := utils.OrbitY(p.BasePosition, p.Center, p.OrbitRate, elapsed)
		pos.Y += utils.FloatOffset(elapsed, p.FloatPerFrame, p.Speed, p.Phase)
		tr.Position = pos

		w := utils.Pulse01(elapsed, particlePulseFreq, p.Phase)
		vis.Size = p.BaseSize * (0.9 + 0.2*w)
		vis.Opacity = p.Opacity * (0.6 + 0.4*w)
		vis.Emissive = 0.7 + 0.3*w
	}
}

func (s *AnimationSystem) updateTeaware(elapsed float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.TeawareComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		tw, _ := ecs.GetComponent[*components.TeawareComponent](s.entityManager, id)
		hovered := GateOpen(s.entityManager, tw.Source, components.GateWhileHovered)
		tr.Rotation.Y = teawareYaw(tw, hovered, elapsed)
	}
}

// teawareYaw 计算茶具绕 Y 轴的角度，并维护自转的累计状态
func teawareYaw(tw *components.TeawareComponent, hovered bool, elapsed float64) float64 {
	yaw := tw.BaseYaw
	if tw.WobbleAmplitude != 0 && hovered {
		yaw += tw.WobbleAmplitude * math.Sin(tw.WobbleFrequency*elapsed)
	}

	if tw.SpinRate != 0 {
		switch {
		case hovered && !tw.Spinning:
			tw.Spinning = true
			tw.SpinningFrom = elapsed
		case !hovered && tw.Spinning:
			tw.SpinAngle = math.Mod(tw.SpinAngle+tw.SpinRate*(elapsed-tw.SpinningFrom), 2*math.Pi)
			tw.Spinning = false
		}
		angle := tw.SpinAngle
		if tw.Spinning {
			angle += tw.SpinRate * (elapsed - tw.SpinningFrom)
		}
		yaw += angle
	}
	return utils.Finite(yaw, tw.BaseYaw)
}

func (s *AnimationSystem) updateVisibility() {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.VisibilityGateComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		gate, _ := ecs.GetComponent[*components.VisibilityGateComponent](s.entityManager, id)
		tr.Hidden = !GateOpen(s.entityManager, gate.Source, gate.Mode)
	}
}

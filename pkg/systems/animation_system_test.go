package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/entities"
	"github.com/decker502/tearoom/pkg/math3d"
)

var (
	idleColor  = color.RGBA{R: 0x8b, G: 0x5a, B: 0x5a, A: 0xff}
	hoverColor = color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}
)

func TestHighlightFollowsHover(t *testing.T) {
	em := ecs.NewEntityManager()
	id, h := addHoverable(em, math3d.Vec3{}, "cushion")
	mat := &components.MaterialComponent{Color: idleColor, Opacity: 1}
	ecs.AddComponent(em, id, mat)
	ecs.AddComponent(em, id, &components.HighlightComponent{
		Source: id,
		Idle:   components.MaterialTint{Color: idleColor, Opacity: 1},
		Hover:  components.MaterialTint{Color: hoverColor, Emissive: hoverColor, EmissiveIntensity: 0.3, Opacity: 1},
	})

	as := NewAnimationSystem(em)
	as.Update(0)
	if mat.Color != idleColor {
		t.Errorf("idle color = %v", mat.Color)
	}

	h.Hovered = true
	as.Update(0.1)
	if mat.Color != hoverColor || mat.EmissiveIntensity != 0.3 {
		t.Errorf("hover material = %+v", mat)
	}

	h.Hovered = false
	as.Update(0.2)
	if mat.Color != idleColor || mat.EmissiveIntensity != 0 {
		t.Errorf("material after exit = %+v", mat)
	}
}

func TestPulseGateAndRest(t *testing.T) {
	em := ecs.NewEntityManager()
	id, h := addHoverable(em, math3d.Vec3{}, "teapot")
	mat := &components.MaterialComponent{Opacity: 1}
	ecs.AddComponent(em, id, mat)
	ecs.AddComponent(em, id, &components.PulseComponent{
		Gate:     id,
		Rest:     0.15,
		Channels: []components.PulseChannel{{Property: components.PulseEmissive, Base: 0.3, Amplitude: 0.15, Frequency: 3}},
	})

	as := NewAnimationSystem(em)
	as.Update(1)
	if mat.EmissiveIntensity != 0.15 {
		t.Errorf("rest intensity = %v, want 0.15", mat.EmissiveIntensity)
	}

	h.Hovered = true
	for _, elapsed := range []float64{0, 0.5, 1, 2.7} {
		as.Update(elapsed)
		want := 0.3 + 0.15*(0.5*math.Sin(3*elapsed)+0.5)
		if !near(mat.EmissiveIntensity, want) {
			t.Errorf("intensity at %v = %v, want %v", elapsed, mat.EmissiveIntensity, want)
		}
		if mat.EmissiveIntensity < 0.3-1e-9 || mat.EmissiveIntensity > 0.45+1e-9 {
			t.Errorf("intensity %v out of [0.3, 0.45]", mat.EmissiveIntensity)
		}
	}
}

func TestPulseScaleAndLight(t *testing.T) {
	em := ecs.NewEntityManager()
	id := addNode(em, 0, math3d.Vec3{})
	light := &components.LightComponent{Kind: components.LightPoint, Intensity: 1}
	ecs.AddComponent(em, id, light)
	ecs.AddComponent(em, id, &components.PulseComponent{Channels: []components.PulseChannel{
		{Property: components.PulseLightIntensity, Base: 0.8, Amplitude: 0.4, Frequency: 3},
		{Property: components.PulseScaleXZ, Base: 1, Amplitude: 0.1, Frequency: 2, Phase: math.Pi / 2},
	}})

	NewAnimationSystem(em).Update(0)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if !near(light.Intensity, 1.0) {
		t.Errorf("light intensity = %v, want 1.0", light.Intensity)
	}
	if !near(tr.Scale.X, 1.1) || !near(tr.Scale.Z, 1.1) || tr.Scale.Y != 1 {
		t.Errorf("scale = %v, want (1.1, 1, 1.1)", tr.Scale)
	}
}

func TestWaveRingPulse(t *testing.T) {
	em, room := buildRoom(t, "battery-park")
	gate, _ := ecs.GetComponent[*components.OverlayGateComponent](em, room.Gates[0])
	root := entities.NewDataOverlay(em, gate)

	NewAnimationSystem(em).Update(1)

	// 第一圈波纹没有延迟：带反相透明度脉动且相位为 0
	var ring ecs.EntityID
	for _, id := range entities.Descendants(em, root) {
		p, ok := ecs.GetComponent[*components.PulseComponent](em, id)
		if ok && len(p.Channels) == 1 && p.Channels[0].Property == components.PulseOpacity && p.Channels[0].Invert && p.Channels[0].Phase == 0 {
			ring = id
			break
		}
	}
	if ring == 0 {
		t.Fatal("first wave ring not found")
	}
	mat, _ := ecs.GetComponent[*components.MaterialComponent](em, ring)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, ring)
	scaler, _ := ecs.GetComponent[*components.TransformComponent](em, tr.Parent)

	w := 0.5*math.Sin(2) + 0.5
	if want := 0.4 * (1 - w); !near(mat.Opacity, want) || math.Abs(mat.Opacity-0.018) > 1e-3 {
		t.Errorf("ring opacity = %v, want %v", mat.Opacity, want)
	}
	if want := 1 + 0.3*w; !near(scaler.Scale.X, want) || !near(scaler.Scale.Z, want) || math.Abs(scaler.Scale.X-1.286) > 1e-3 {
		t.Errorf("ring scale = %v, want %v", scaler.Scale, want)
	}
}

func addParticle(em *ecs.EntityManager, p components.DecorativeParticleComponent) (*components.TransformComponent, *components.ParticleVisualComponent) {
	id := addNode(em, 0, p.BasePosition)
	ecs.AddComponent(em, id, &p)
	vis := &components.ParticleVisualComponent{}
	ecs.AddComponent(em, id, vis)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	return tr, vis
}

func TestOrbitParticleKeepsRadius(t *testing.T) {
	em := ecs.NewEntityManager()
	base := math3d.V3(0.3, 0.5, 0.1)
	tr, vis := addParticle(em, components.DecorativeParticleComponent{
		BasePosition:  base,
		BaseSize:      0.02,
		Opacity:       0.8,
		Speed:         1.2,
		Phase:         0.7,
		Motion:        components.MotionLayerOrbit,
		OrbitRate:     0.09,
		FloatPerFrame: 0.0015,
	})

	as := NewAnimationSystem(em)
	radius := base.HorizontalDist(math3d.Vec3{})
	for _, elapsed := range []float64{0, 1, 10, 100, 3600} {
		as.Update(elapsed)
		if r := tr.Position.HorizontalDist(math3d.Vec3{}); math.Abs(r-radius) > 1e-9 {
			t.Errorf("radius at %v = %v, want %v", elapsed, r, radius)
		}
		// 漂浮有界：|y - y0| ≤ 2·perFrame·60/speed
		if dy := math.Abs(tr.Position.Y - base.Y); dy > 2*0.0015*60/1.2+1e-9 {
			t.Errorf("float offset at %v = %v", elapsed, dy)
		}
		if vis.Opacity < 0.8*0.6-1e-9 || vis.Opacity > 0.8+1e-9 {
			t.Errorf("opacity at %v = %v", elapsed, vis.Opacity)
		}
	}
}

func TestAnimationIdempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	tr, vis := addParticle(em, components.DecorativeParticleComponent{
		BasePosition: math3d.V3(1, 1, 1),
		BaseSize:     0.01,
		Opacity:      0.6,
		Speed:        0.4,
		Phase:        2,
		Motion:       components.MotionSparkle,
	})

	as := NewAnimationSystem(em)
	as.Update(12.5)
	pos, v := tr.Position, *vis
	as.Update(12.5)
	as.Update(12.5)
	if tr.Position != pos || *vis != v {
		t.Errorf("repeated Update changed state: %v %+v vs %v %+v", tr.Position, *vis, pos, v)
	}
}

func TestTeawareSpinAccumulates(t *testing.T) {
	em := ecs.NewEntityManager()
	id, h := addHoverable(em, math3d.Vec3{}, "cup")
	tw := &components.TeawareComponent{Source: id, SpinRate: 1.2}
	ecs.AddComponent(em, id, tw)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	as := NewAnimationSystem(em)
	as.Update(0)
	if tr.Rotation.Y != 0 {
		t.Fatalf("idle cup rotated: %v", tr.Rotation.Y)
	}

	h.Hovered = true
	as.Update(1)
	as.Update(2)
	as.Update(2)
	if !near(tr.Rotation.Y, 1.2) {
		t.Errorf("after 1s hover yaw = %v, want 1.2", tr.Rotation.Y)
	}

	h.Hovered = false
	as.Update(2)
	as.Update(10)
	if !near(tr.Rotation.Y, 1.2) {
		t.Errorf("yaw should hold after exit: %v", tr.Rotation.Y)
	}

	h.Hovered = true
	as.Update(10)
	as.Update(10.5)
	if !near(tr.Rotation.Y, 1.8) {
		t.Errorf("yaw after second hover = %v, want 1.8", tr.Rotation.Y)
	}
}

func TestTeapotWobble(t *testing.T) {
	em := ecs.NewEntityManager()
	id, h := addHoverable(em, math3d.Vec3{}, "teapot")
	ecs.AddComponent(em, id, &components.TeawareComponent{Source: id, WobbleAmplitude: 0.1, WobbleFrequency: 2})
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	as := NewAnimationSystem(em)
	h.Hovered = true
	as.Update(math.Pi / 4)
	if !near(tr.Rotation.Y, 0.1) {
		t.Errorf("wobble peak = %v, want 0.1", tr.Rotation.Y)
	}
	h.Hovered = false
	as.Update(math.Pi / 4)
	if tr.Rotation.Y != 0 {
		t.Errorf("wobble should stop on exit: %v", tr.Rotation.Y)
	}
}

func TestVisibilityGate(t *testing.T) {
	em := ecs.NewEntityManager()
	door, h := addHoverable(em, math3d.Vec3{}, "door")
	sparkles := addNode(em, 0, math3d.Vec3{})
	ecs.AddComponent(em, sparkles, &components.VisibilityGateComponent{Source: door, Mode: components.GateWhileHoveredOrToggled})
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, sparkles)

	as := NewAnimationSystem(em)
	tests := []struct {
		hovered, toggled bool
		hidden           bool
	}{
		{false, false, true},
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}
	for i, tt := range tests {
		h.Hovered, h.Toggled = tt.hovered, tt.toggled
		as.Update(float64(i))
		if tr.Hidden != tt.hidden {
			t.Errorf("step %d: hidden = %v, want %v", i, tr.Hidden, tt.hidden)
		}
	}
}

package entities

import (
	"image/color"
	"math"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
	"github.com/decker502/tearoom/pkg/utils"
)

// 平躺：绕 X 轴 -π/2，把 XY 平面的几何体放到地面
var flat = math3d.Vec3{X: -math.Pi / 2}

var unitScale = math3d.V3(1, 1, 1)

func hex(s string) color.RGBA {
	return utils.MustHexColor(s)
}

// standard 受光照材质
func standard(c, emissive string, intensity float64) components.MaterialComponent {
	m := components.MaterialComponent{Color: hex(c), Opacity: 1}
	if emissive != "" {
		m.Emissive = hex(emissive)
		m.EmissiveIntensity = intensity
	}
	return m
}

// basic 不受光照的半透明材质
func basic(c string, opacity float64) components.MaterialComponent {
	return components.MaterialComponent{Color: hex(c), Opacity: opacity, Unlit: true, DoubleSided: true}
}

func tintOf(m components.MaterialComponent) components.MaterialTint {
	return components.MaterialTint{
		Color:             m.Color,
		Emissive:          m.Emissive,
		EmissiveIntensity: m.EmissiveIntensity,
		Opacity:           m.Opacity,
	}
}

func hoverTint(p config.PaletteConfig, opacity float64) components.MaterialTint {
	return components.MaterialTint{
		Color:             p.HoverColor.RGBA,
		Emissive:          p.HoverEmissive.RGBA,
		EmissiveIntensity: p.HoverIntensity,
		Opacity:           opacity,
	}
}

func boxShape(w, h, d float64) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapeBox, Size: math3d.V3(w, h, d)}
}

func cylinderShape(top, bottom, h float64, seg int) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapeCylinder, Radius2: top, Radius: bottom, Height: h, Segments: seg}
}

func coneShape(r, h float64, seg int) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapeCone, Radius: r, Height: h, Segments: seg}
}

func sphereShape(r float64, seg int) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapeSphere, Radius: r, Segments: seg}
}

func planeShape(w, h float64) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapePlane, Size: math3d.V3(w, h, 0)}
}

func ringShape(inner, outer float64, seg int) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapeRing, Radius2: inner, Radius: outer, Segments: seg}
}

func torusShape(r, tube float64, radial, tubular int, arc float64) components.MeshComponent {
	return components.MeshComponent{Shape: components.ShapeTorus, Radius: r, Radius2: tube, Segments: tubular, Segments2: radial, Arc: arc}
}

// builder 在实体管理器中创建场景图节点
type builder struct {
	em *ecs.EntityManager
}

// group 创建只有变换的空节点
func (b builder) group(parent ecs.EntityID, pos math3d.Vec3) ecs.EntityID {
	return b.groupRot(parent, pos, math3d.Vec3{})
}

func (b builder) groupRot(parent ecs.EntityID, pos, rot math3d.Vec3) ecs.EntityID {
	id := b.em.CreateEntity()
	ecs.AddComponent(b.em, id, &components.TransformComponent{
		Position: pos,
		Rotation: rot,
		Scale:    unitScale,
		Parent:   parent,
	})
	return id
}

// mesh 创建带几何体和材质的节点
func (b builder) mesh(parent ecs.EntityID, pos, rot math3d.Vec3, shape components.MeshComponent, mat components.MaterialComponent) ecs.EntityID {
	id := b.groupRot(parent, pos, rot)
	s := shape
	ecs.AddComponent(b.em, id, &s)
	m := mat
	ecs.AddComponent(b.em, id, &m)
	return id
}

// box 是最常用的 mesh 简写
func (b builder) box(parent ecs.EntityID, pos, size math3d.Vec3, mat components.MaterialComponent) ecs.EntityID {
	return b.mesh(parent, pos, math3d.Vec3{}, boxShape(size.X, size.Y, size.Z), mat)
}

// pointLight 创建点光源
func (b builder) pointLight(parent ecs.EntityID, pos math3d.Vec3, c string, intensity, distance float64) ecs.EntityID {
	id := b.group(parent, pos)
	ecs.AddComponent(b.em, id, &components.LightComponent{
		Kind:      components.LightPoint,
		Color:     hex(c),
		Intensity: intensity,
		Distance:  distance,
	})
	return id
}

// hoverable 为节点添加交互组件，拾取盒取几何体的局部包围盒
func (b builder) hoverable(id ecs.EntityID, name string, halfExtents math3d.Vec3, toggleable bool) *components.HoverableComponent {
	h := &components.HoverableComponent{
		Name:        name,
		Toggleable:  toggleable,
		HalfExtents: halfExtents,
		Affordance:  components.AffordancePointer,
	}
	ecs.AddComponent(b.em, id, h)
	return h
}

// highlight 为节点添加交互配色，Idle 取当前材质
func (b builder) highlight(id, source ecs.EntityID, mode components.GateMode, hover components.MaterialTint) {
	mat, ok := ecs.GetComponent[*components.MaterialComponent](b.em, id)
	if !ok {
		return
	}
	ecs.AddComponent(b.em, id, &components.HighlightComponent{
		Source: source,
		Mode:   mode,
		Idle:   tintOf(*mat),
		Hover:  hover,
	})
}

// pulse 为节点添加脉动
func (b builder) pulse(id ecs.EntityID, gate ecs.EntityID, rest float64, channels ...components.PulseChannel) {
	ecs.AddComponent(b.em, id, &components.PulseComponent{
		Channels: channels,
		Gate:     gate,
		Rest:     rest,
	})
}

// gateVisibility 让节点只在 source 满足条件时显示
func (b builder) gateVisibility(id, source ecs.EntityID, mode components.GateMode) {
	ecs.AddComponent(b.em, id, &components.VisibilityGateComponent{Source: source, Mode: mode})
	if tr, ok := ecs.GetComponent[*components.TransformComponent](b.em, id); ok {
		tr.Hidden = true
	}
}

package entities

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/tearoom/internal/particle"
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// TeaRoom 是构建完成的场景句柄
// 只保存实体ID，所有状态都在组件中
type TeaRoom struct {
	Root ecs.EntityID

	// Doors 推拉门滑动组（左、右）
	Doors [2]ecs.EntityID

	// Hoverables 交互元素：名称 -> 实体
	Hoverables map[string]ecs.EntityID

	// Gates 叠加层门控实体（按配置顺序）
	Gates []ecs.EntityID
}

// Hoverable 按名称查找交互元素
func (r *TeaRoom) Hoverable(name string) (ecs.EntityID, bool) {
	id, ok := r.Hoverables[name]
	return id, ok
}

// NewTeaRoom 构建茶室场景
//
// 构建是无条件的：同一变体总是得到同样的结构；粒子布局只取决于 rng，
// 传入固定种子的随机源即可复现。叠加层此时不挂载，只创建门控。
//
// 参数:
//   - em: 实体管理器
//   - variant: 已验证的变体配置
//   - rng: 显式种子的随机源
func NewTeaRoom(em *ecs.EntityManager, variant *config.VariantConfig, rng particle.Rand) (*TeaRoom, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if variant == nil {
		return nil, fmt.Errorf("variant cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	b := builder{em: em}
	room := &TeaRoom{
		Root:       b.group(0, math3d.Vec3{}),
		Hoverables: make(map[string]ecs.EntityID),
	}

	b.addLights(room.Root)
	b.addFloor(room, variant.Palette)
	b.addTeaTable(room)
	b.addWalls(room.Root, variant.PanelTexture)

	for i, isLeft := range []bool{true, false} {
		x := variant.Door.Width / 2
		name := config.TriggerDoorRight
		if isLeft {
			x = -x
			name = config.TriggerDoorLeft
		}
		slide, panel := b.addShojiDoor(rng, room.Root, math3d.V3(x, 1.5, 3.5), isLeft, variant.Door, variant.Palette, name)
		room.Doors[i] = slide
		room.Hoverables[name] = panel
	}

	b.addRoof(room.Root)
	b.addCeiling(room.Root)
	b.addLantern(room.Root, math3d.V3(-2.9, 1.58, -3.25))
	b.addLantern(room.Root, math3d.V3(-2.1, 1.58, -3.25))
	b.addStoneLantern(room.Root, math3d.V3(-2.5, 0, 2))
	b.addCushions(room)

	ambient := b.group(room.Root, math3d.Vec3{})
	s := config.AmbientSparkleScale
	b.sparkles(rng, ambient, math3d.V3(s, s, s), config.AmbientSparkleCount, 1, 0.2, 0.12, "#ffd4a3")

	for i := range variant.Overlays {
		def := &variant.Overlays[i]
		gate, err := b.addOverlayGate(room, def, rng)
		if err != nil {
			return nil, fmt.Errorf("overlay %q: %w", def.Name, err)
		}
		room.Gates = append(room.Gates, gate)
	}

	log.Printf("[TeaRoom] built variant %q: %d entities, %d hoverables, %d overlay gates",
		variant.Name, em.EntityCount(), len(room.Hoverables), len(room.Gates))
	return room, nil
}

// addLights 全局光照
func (b builder) addLights(root ecs.EntityID) {
	amb := b.group(root, math3d.Vec3{})
	ecs.AddComponent(b.em, amb, &components.LightComponent{Kind: components.LightAmbient, Color: hex("#ffd4a3"), Intensity: 0.25})

	sun := b.group(root, math3d.V3(8, 12, 8))
	ecs.AddComponent(b.em, sun, &components.LightComponent{Kind: components.LightDirectional, Color: hex("#ffe8c4"), Intensity: 0.8})

	// 顶部聚光灯按无衰减点光源处理
	b.pointLight(root, math3d.V3(0, 6, 0), "#ffd4a3", 1.5, 0)
	b.pointLight(root, math3d.V3(0, 4, 0), "#ffe8c4", 1.5, 10)
	b.pointLight(root, math3d.V3(0, 2.5, -3), "#ffd4a3", 3, 8)
	b.pointLight(root, math3d.V3(-3, 1.8, 0), "#ffc8a3", 1.5, 6)
	b.pointLight(root, math3d.V3(3, 1.8, 0), "#ffc8a3", 1.5, 6)
	b.pointLight(root, math3d.V3(0, 1.2, 2), "#ffd4a3", 1, 5)
}

// matGrid 九块榻榻米的中心坐标
var matGrid = [config.TatamiMatCount][2]float64{
	{-2, 2}, {0, 2}, {2, 2},
	{-2, 0}, {0, 0}, {2, 0},
	{-2, -2}, {0, -2}, {2, -2},
}

// addFloor 地板与榻榻米
func (b builder) addFloor(room *TeaRoom, p config.PaletteConfig) {
	b.mesh(room.Root, math3d.Vec3{}, flat, planeShape(12, 12), standard("#c4a574", "", 0))

	for i, xz := range matGrid {
		mat := components.MaterialComponent{
			Color:             p.MatColor.RGBA,
			Emissive:          p.MatEmissive.RGBA,
			EmissiveIntensity: p.MatIntensity,
			Opacity:           1,
		}
		id := b.mesh(room.Root, math3d.V3(xz[0], 0.01, xz[1]), flat, planeShape(1.9, 1.9), mat)
		name := config.MatTrigger(i)
		b.hoverable(id, name, math3d.V3(0.95, 0.95, 0.02), false)
		b.highlight(id, id, components.GateWhileHovered, hoverTint(p, 1))
		room.Hoverables[name] = id

		b.mesh(id, math3d.Vec3{}, math3d.Vec3{}, components.MeshComponent{Shape: components.ShapeOutline, Size: math3d.V3(1.9, 1.9, 0)}, basic("#8b6f47", 1))
	}
}

// addTeaTable 茶桌、茶壶和茶杯
func (b builder) addTeaTable(room *TeaRoom) {
	table := b.group(room.Root, math3d.V3(0, 0, -0.5))
	b.box(table, math3d.V3(0, 0.12, 0), math3d.V3(1.8, 0.12, 1.2), standard("#5c4033", "", 0))
	for _, xz := range [][2]float64{{-0.8, -0.5}, {0.8, -0.5}, {-0.8, 0.5}, {0.8, 0.5}} {
		b.box(table, math3d.V3(xz[0], 0.06, xz[1]), math3d.V3(0.08, 0.12, 0.08), standard("#4a3822", "", 0))
	}

	teapot := b.mesh(table, math3d.V3(0, 0.25, 0), math3d.Vec3{}, sphereShape(0.15, 16), standard("#4a6741", "#6b8e5f", 0.15))
	b.hoverable(teapot, config.TriggerTeapot, math3d.V3(0.15, 0.15, 0.15), false)
	b.pulse(teapot, teapot, 0.15, components.PulseChannel{Property: components.PulseEmissive, Base: 0.3, Amplitude: 0.15, Frequency: 3})
	ecs.AddComponent(b.em, teapot, &components.TeawareComponent{Source: teapot, WobbleAmplitude: 0.1, WobbleFrequency: 2})
	room.Hoverables[config.TriggerTeapot] = teapot

	light := b.pointLight(table, math3d.V3(0, 0.35, 0), "#ffd4a3", 1.5, 1)
	b.gateVisibility(light, teapot, components.GateWhileHovered)

	b.mesh(table, math3d.V3(0.15, 0.25, 0), math3d.Vec3{Z: math.Pi / 6}, cylinderShape(0.02, 0.03, 0.15, 8), standard("#4a6741", "", 0))
	b.mesh(table, math3d.V3(-0.15, 0.25, 0), math3d.Vec3{X: math.Pi / 2}, torusShape(0.08, 0.015, 8, 16, math.Pi), standard("#4a6741", "", 0))

	for i, xz := range [config.TeaCupCount][2]float64{{0.4, 0.3}, {-0.4, 0.3}, {0.4, -0.3}, {-0.4, -0.3}} {
		cup := b.mesh(table, math3d.V3(xz[0], 0.21, xz[1]), math3d.Vec3{}, cylinderShape(0.05, 0.04, 0.08, 12), standard("#5a7a52", "#7a9a72", 0.2))
		name := config.CupTrigger(i)
		b.hoverable(cup, name, math3d.V3(0.05, 0.04, 0.05), false)
		// 原为每帧 +0.02 弧度
		spin := 0.02 * 60
		ecs.AddComponent(b.em, cup, &components.TeawareComponent{Source: cup, SpinRate: spin})
		b.pulse(cup, cup, 0.2, components.PulseChannel{Property: components.PulseEmissive, Base: 0.4, Amplitude: 0.2, Frequency: 3, Phase: float64(i)})
		room.Hoverables[name] = cup

		l := b.pointLight(table, math3d.V3(xz[0], 0.3, xz[1]), "#ffd4a3", 1.5, 1)
		b.gateVisibility(l, cup, components.GateWhileHovered)
	}
}

// addWalls 墙体、纸屏、墙架和角柱
func (b builder) addWalls(root ecs.EntityID, panelTexture string) {
	wall := standard("#2d2420", "", 0)
	b.box(root, math3d.V3(0, 1.5, -3.5), math3d.V3(7, 3, 0.2), wall)
	b.mesh(root, math3d.V3(-3.5, 1.5, 0), math3d.Vec3{Y: math.Pi / 2}, boxShape(7, 3, 0.2), wall)
	b.mesh(root, math3d.V3(3.5, 1.5, 0), math3d.Vec3{Y: -math.Pi / 2}, boxShape(7, 3, 0.2), wall)

	for _, x := range []float64{-2.5, -0.8, 0.8, 2.5} {
		m := standard("#ffd4a3", "#ffb87a", 0.6)
		m.Texture = panelTexture
		b.box(root, math3d.V3(x, 1.8, -3.45), math3d.V3(1.2, 1.4, 0.05), m)
	}
	side := standard("#ffd4a3", "#ffb87a", 0.5)
	side.Texture = panelTexture
	b.mesh(root, math3d.V3(3.45, 1.8, -1.5), math3d.Vec3{Y: -math.Pi / 2}, boxShape(1.2, 1.2, 0.05), side)

	shelf := b.group(root, math3d.V3(-2.5, 1.5, -3.4))
	b.box(shelf, math3d.Vec3{}, math3d.V3(1.5, 0.05, 0.25), standard("#3d2817", "", 0))
	b.box(shelf, math3d.V3(-0.7, -0.15, 0), math3d.V3(0.05, 0.3, 0.22), standard("#2d2420", "", 0))
	b.box(shelf, math3d.V3(0.7, -0.15, 0), math3d.V3(0.05, 0.3, 0.22), standard("#2d2420", "", 0))

	for _, xz := range [][2]float64{{-3.4, -3.4}, {3.4, -3.4}, {-3.4, 3.4}, {3.4, 3.4}} {
		b.box(root, math3d.V3(xz[0], 1.5, xz[1]), math3d.V3(0.2, 3, 0.2), standard("#2d2420", "", 0))
	}
}

// addShojiDoor 推拉门
//
// 返回滑动组（带 DoorComponent）和门板（带 HoverableComponent）。
func (b builder) addShojiDoor(rng particle.Rand, root ecs.EntityID, pos math3d.Vec3, isLeft bool, d config.DoorConfig, p config.PaletteConfig, name string) (slide, panel ecs.EntityID) {
	w, h := d.Width, d.Height
	frame := b.group(root, pos)
	slide = b.group(frame, math3d.Vec3{})

	panelMat := components.MaterialComponent{
		Color:             p.DoorColor.RGBA,
		Emissive:          p.DoorEmissive.RGBA,
		EmissiveIntensity: p.DoorIntensity,
		Opacity:           0.94,
	}
	panel = b.box(slide, math3d.Vec3{}, math3d.V3(w, h, 0.1), panelMat)
	b.hoverable(panel, name, math3d.V3(w/2, h/2, 0.05), true)
	b.highlight(panel, panel, components.GateWhileHovered, hoverTint(p, 0.94))
	b.pulse(panel, panel, p.DoorIntensity, components.PulseChannel{Property: components.PulseEmissive, Base: 0.1, Amplitude: 0.08, Frequency: 2})

	ecs.AddComponent(b.em, slide, &components.DoorComponent{
		IsLeft:     isLeft,
		Width:      w,
		MaxSlide:   d.MaxSlide(),
		HoverNudge: d.HoverNudge,
		Approach:   d.Approach,
		Panel:      panel,
	})

	lattice := components.MaterialComponent{Color: p.LatticeColor.RGBA, Opacity: 1}
	for i := 0; i < 7; i++ {
		x := -w/2 + 0.15 + float64(i)*(w-0.3)/6
		bar := b.box(slide, math3d.V3(x, 0, 0.055), math3d.V3(0.025, h-0.1, 0.025), lattice)
		b.highlight(bar, panel, components.GateWhileHovered, hoverTint(p, 1))
	}
	for i := 0; i < 18; i++ {
		y := -h/2 + 0.1 + float64(i)*(h-0.2)/17
		bar := b.box(slide, math3d.V3(0, y, 0.055), math3d.V3(w-0.1, 0.025, 0.025), lattice)
		b.highlight(bar, panel, components.GateWhileHovered, hoverTint(p, 1))
	}

	b.box(slide, math3d.V3(0, 0, -0.055), math3d.V3(w+0.05, h+0.05, 0.08), standard("#d4c4a8", "", 0))
	hx := w / 3
	if !isLeft {
		hx = -hx
	}
	b.mesh(slide, math3d.V3(hx, 0, 0.08), math3d.Vec3{}, cylinderShape(0.03, 0.03, 0.18, 12), standard("#3d2817", "", 0))
	b.mesh(slide, math3d.V3(hx, 0, 0.12), math3d.Vec3{}, torusShape(0.04, 0.01, 8, 16, 0), standard("#2d2420", "", 0))

	b.box(frame, math3d.V3(0, h/2+0.08, 0), math3d.V3(w*2.2, 0.15, 0.15), standard("#d4c4a8", "", 0))
	b.box(frame, math3d.V3(w+0.08, 0, 0), math3d.V3(0.15, h+0.3, 0.15), standard("#d4c4a8", "", 0))
	b.box(frame, math3d.V3(-w-0.08, 0, 0), math3d.V3(0.15, h+0.3, 0.15), standard("#d4c4a8", "", 0))

	effects := b.group(frame, math3d.Vec3{})
	b.gateVisibility(effects, panel, components.GateWhileHoveredOrToggled)
	b.sparkles(rng, effects, math3d.V3(w*1.2, h*1.1, 0.5), config.DoorSparkleCount, 2.5, 0.6, 0.4, "#ffc0cb")
	b.pointLight(effects, math3d.V3(0, 0, 0.5), "#ffb3c1", 2.2, 4)
	return slide, panel
}

// roofTier 宝塔屋顶的一层
type roofTier struct {
	y, radius, height float64
	color, emissive   string
	intensity         float64
}

var roofTiers = []roofTier{
	{0, 4.5, 0.5, "#5c4033", "#d4a574", 0.1},
	{0.7, 3.6, 0.45, "#6b5438", "#d4a574", 0.12},
	{1.3, 2.8, 0.4, "#7a6447", "#e8c4a0", 0.14},
	{1.85, 2.1, 0.35, "#8b7355", "#f5d4b0", 0.16},
}

// addRoof 四层宝塔屋顶，每层的发光强度以不同相位呼吸
func (b builder) addRoof(root ecs.EntityID) {
	roof := b.group(root, math3d.V3(0, 3.2, 0))
	for i, t := range roofTiers {
		id := b.mesh(roof, math3d.V3(0, t.y, 0), math3d.Vec3{Y: math.Pi / 4}, coneShape(t.radius, t.height, 4), standard(t.color, t.emissive, t.intensity))
		b.pulse(id, 0, 0, components.PulseChannel{
			Property:  components.PulseEmissive,
			Base:      0.1,
			Amplitude: 0.08,
			Frequency: 1.2,
			Phase:     float64(i) * 0.4,
		})
	}
	b.mesh(roof, math3d.V3(0, 2.35, 0), math3d.Vec3{}, cylinderShape(0.08, 0.12, 0.5, 8), standard("#a68a64", "#ffd4a3", 0.3))
	b.mesh(roof, math3d.V3(0, 2.7, 0), math3d.Vec3{}, sphereShape(0.15, 16), standard("#c4a574", "#ffe8c4", 0.4))
	b.pointLight(roof, math3d.V3(0, 0.5, 0), "#ffd4a3", 1.2, 10)
	b.pointLight(roof, math3d.V3(0, 2.7, 0), "#ffe8c4", 0.8, 5)
}

// addCeiling 顶板、横梁
func (b builder) addCeiling(root ecs.EntityID) {
	b.box(root, math3d.V3(0, 3, 0), math3d.V3(7, 0.2, 7), standard("#4a3822", "", 0))
	for z := -2; z <= 2; z++ {
		b.box(root, math3d.V3(0, 3.08, float64(z)*1.5), math3d.V3(7, 0.12, 0.15), standard("#3d2817", "", 0))
	}
}

// addLantern 吊灯笼，灯光闪烁
func (b builder) addLantern(root ecs.EntityID, pos math3d.Vec3) {
	g := b.group(root, pos)
	b.mesh(g, math3d.V3(0, 0.1, 0), math3d.Vec3{}, cylinderShape(0.06, 0.08, 0.12, 8), standard("#2d2420", "", 0))
	b.mesh(g, math3d.V3(0, 0.25, 0), math3d.Vec3{}, cylinderShape(0.1, 0.1, 0.02, 12), standard("#3d2817", "", 0))
	shade := standard("#f5e8d8", "#ffd4a3", 0.4)
	shade.Opacity = 0.85
	b.box(g, math3d.V3(0, 0.4, 0), math3d.V3(0.25, 0.2, 0.25), shade)
	b.mesh(g, math3d.V3(0, 0.6, 0), math3d.Vec3{Y: math.Pi / 4}, coneShape(0.18, 0.15, 4), standard("#4a4a4a", "", 0))

	light := b.pointLight(g, math3d.V3(0, 0.45, 0), "#ffd4a3", 1, 3)
	b.pulse(light, 0, 0, components.PulseChannel{Property: components.PulseLightIntensity, Base: 0.8, Amplitude: 0.4, Frequency: 3})
}

// addStoneLantern 石灯笼
func (b builder) addStoneLantern(root ecs.EntityID, pos math3d.Vec3) {
	g := b.group(root, pos)
	stone := standard("#6a6a6a", "", 0)
	b.mesh(g, math3d.V3(0, 0.1, 0), math3d.Vec3{}, cylinderShape(0.15, 0.2, 0.2, 6), stone)
	b.box(g, math3d.V3(0, 0.25, 0), math3d.V3(0.28, 0.15, 0.28), standard("#5a5a5a", "", 0))
	b.mesh(g, math3d.V3(0, 0.4, 0), math3d.Vec3{}, cylinderShape(0.18, 0.18, 0.25, 6), stone)

	window := standard("#f5e8d8", "#ffd4a3", 0.5)
	window.Opacity = 0.9
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		b.box(g, math3d.V3(math.Cos(a)*0.15, 0.4, math.Sin(a)*0.15), math3d.V3(0.08, 0.12, 0.02), window)
	}
	b.pointLight(g, math3d.V3(0, 0.4, 0), "#ffd4a3", 1.2, 2.5)
	b.mesh(g, math3d.V3(0, 0.6, 0), math3d.Vec3{Y: math.Pi / 4}, coneShape(0.25, 0.15, 4), standard("#5a5a5a", "", 0))
	b.mesh(g, math3d.V3(0, 0.7, 0), math3d.Vec3{}, sphereShape(0.05, 12), standard("#7a7a7a", "", 0))
}

// cushionLayout 坐垫位置与颜色
var cushionLayout = [config.CushionCount]struct {
	x, z  float64
	color string
}{
	{-0.8, 0.8, "#a86a6a"},
	{0.8, 0.8, "#9b5a5a"},
	{-0.3, -1.5, "#b87a7a"},
	{0.3, -1.5, "#8b4a4a"},
	{-0.8, -1.5, "#a86a6a"},
	{0.8, -1.5, "#9b5a5a"},
}

// addCushions 坐垫：悬停时抬起、换色、呼吸发光并点亮局部补光
func (b builder) addCushions(room *TeaRoom) {
	for i, c := range cushionLayout {
		mat := standard("#8b5a5a", c.color, 0)
		id := b.box(room.Root, math3d.V3(c.x, 0.06, c.z), math3d.V3(0.5, 0.1, 0.5), mat)
		name := config.CushionTrigger(i)
		b.hoverable(id, name, math3d.V3(0.25, 0.05, 0.25), false)
		b.highlight(id, id, components.GateWhileHovered, components.MaterialTint{
			Color:    hex(c.color),
			Emissive: hex(c.color),
			Opacity:  1,
		})
		b.pulse(id, id, 0, components.PulseChannel{Property: components.PulseEmissive, Base: 0.2, Amplitude: 0.1, Frequency: 3})
		ecs.AddComponent(b.em, id, &components.LiftComponent{Source: id, IdleY: 0.06, HoverY: 0.08, Approach: 0.12})
		room.Hoverables[name] = id

		light := b.pointLight(room.Root, math3d.V3(c.x, 0.16, c.z), c.color, 0.8, 1.2)
		b.gateVisibility(light, id, components.GateWhileHovered)
	}
}

// addOverlayGate 为叠加层创建门控（不挂载内容）
func (b builder) addOverlayGate(room *TeaRoom, def *config.OverlayConfig, rng particle.Rand) (ecs.EntityID, error) {
	gate := &components.OverlayGateComponent{
		Name:   def.Name,
		Mode:   components.GateWhileHovered,
		Def:    def,
		Parent: room.Root,
		Anchor: def.Anchor.Vec3,
		Seed:   int64(rng.Float64() * (1 << 53)),
	}
	for _, t := range def.Triggers {
		id, ok := room.Hoverables[t]
		if !ok {
			return 0, fmt.Errorf("trigger %q not found in scene", t)
		}
		gate.Triggers = append(gate.Triggers, id)
	}

	id := b.group(room.Root, math3d.Vec3{})
	ecs.AddComponent(b.em, id, gate)
	return id, nil
}

package systems

import (
	"cmp"
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/decker502/tearoom/internal/mesh"
	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
	"github.com/decker502/tearoom/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 光照参数
const (
	// pointLightScale 点光源强度的整体缩放，避免多光源叠加后过曝
	pointLightScale = 0.35
	// glowScale 粒子光晕贴图相对粒子半径的放大倍数
	glowScale = 3.0
	// lineHalfWidth 线段半宽（像素）
	lineHalfWidth = 0.6
	// minLabelPixels 小于该像素高度的文字不绘制
	minLabelPixels = 3.0

	maxBatchVertices = math.MaxUint16 - 4
)

// primitive 一个待绘制的图元（三角形、四边形或文字）
type primitive struct {
	depth float64
	verts [4]ebiten.Vertex
	n     int

	// texture 贴图路径，空表示纯色
	texture string
	// glow 粒子光晕（加法混合）
	glow bool

	label *label
}

type label struct {
	text   string
	x, y   float64
	pixels float64
	color  color.RGBA
}

type dirLight struct {
	dir   math3d.Vec3 // 指向光源
	color utils.RGB
}

type pointLight struct {
	pos      math3d.Vec3
	color    utils.RGB
	distance float64
}

type lightSet struct {
	ambient utils.RGB
	dirs    []dirLight
	points  []pointLight
}

// RenderStats 最近一帧的绘制统计
type RenderStats struct {
	Triangles int
	Lines     int
	Particles int
	Labels    int
	Batches   int
}

// RenderSystem 软件 3D 渲染
//
// 所有图元投影到屏幕后按视深从远到近排序（画家算法），
// 相邻且贴图、混合方式相同的图元合并为一次 DrawTriangles。
// 着色为逐面 Lambert + 自发光，再按视深做线性雾。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	transforms    *TransformSystem
	camera        *math3d.Camera

	background utils.RGB
	fogNear    float64
	fogFar     float64

	loadImage func(path string) *ebiten.Image
	face      text.Face

	meshes   map[components.MeshComponent]*mesh.Mesh
	textures map[string]*ebiten.Image
	white    *ebiten.Image
	glow     *ebiten.Image

	lights lightSet
	prims  []primitive
	stats  RenderStats

	// 预分配的顶点/索引缓冲，避免每帧分配
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - loadImage: 贴图加载函数（可为 nil，此时忽略贴图）
//   - face: 文字字体（可为 nil，此时不绘制文字）
func NewRenderSystem(em *ecs.EntityManager, ts *TransformSystem, cam *math3d.Camera, loadImage func(string) *ebiten.Image, face text.Face) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		transforms:    ts,
		camera:        cam,
		background:    utils.ToRGB(utils.MustHexColor(config.BackgroundColor)),
		fogNear:       config.FogNear,
		fogFar:        config.FogFar,
		loadImage:     loadImage,
		face:          face,
		meshes:        make(map[components.MeshComponent]*mesh.Mesh),
		textures:      make(map[string]*ebiten.Image),
		vertices:      make([]ebiten.Vertex, 0, 4096),
		indices:       make([]uint16, 0, 6144),
	}
}

// Stats 返回最近一帧的统计
func (s *RenderSystem) Stats() RenderStats {
	return s.stats
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.background.RGBA(1))
	s.collect()
	s.flushAll(screen)
}

// collect 收集并排序本帧的所有图元
func (s *RenderSystem) collect() {
	s.prims = s.prims[:0]
	s.stats = RenderStats{}
	s.gatherLights()

	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith3[*components.TransformComponent, *components.MeshComponent, *components.MaterialComponent](em) {
		if !s.transforms.IsVisible(id) {
			continue
		}
		shape, _ := ecs.GetComponent[*components.MeshComponent](em, id)
		mat, _ := ecs.GetComponent[*components.MaterialComponent](em, id)
		if mat.Opacity <= 0 {
			continue
		}
		s.collectMesh(s.transforms.WorldPose(id), s.meshFor(*shape), mat)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.TransformComponent, *components.LineComponent, *components.MaterialComponent](em) {
		if !s.transforms.IsVisible(id) {
			continue
		}
		line, _ := ecs.GetComponent[*components.LineComponent](em, id)
		mat, _ := ecs.GetComponent[*components.MaterialComponent](em, id)
		pose := s.transforms.WorldPose(id)
		s.collectLine(pose.Apply(line.From), pose.Apply(line.To), utils.ToRGB(line.Color), mat.Opacity)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.TransformComponent, *components.DecorativeParticleComponent, *components.ParticleVisualComponent](em) {
		if !s.transforms.IsVisible(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.DecorativeParticleComponent](em, id)
		vis, _ := ecs.GetComponent[*components.ParticleVisualComponent](em, id)
		s.collectParticle(s.transforms.WorldPosition(id), p.Color, vis)
	}

	if s.face != nil {
		for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.StatPanelComponent](em) {
			if !s.transforms.IsVisible(id) {
				continue
			}
			panel, _ := ecs.GetComponent[*components.StatPanelComponent](em, id)
			s.collectPanel(s.transforms.WorldPose(id), panel)
		}
	}

	// 远的先画；同深度保持收集顺序
	slices.SortStableFunc(s.prims, func(a, b primitive) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// gatherLights 收集可见光源的世界坐标
func (s *RenderSystem) gatherLights() {
	s.lights.ambient = utils.RGB{}
	s.lights.dirs = s.lights.dirs[:0]
	s.lights.points = s.lights.points[:0]

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.LightComponent](s.entityManager) {
		if !s.transforms.IsVisible(id) {
			continue
		}
		l, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		c := utils.ToRGB(l.Color).Scale(l.Intensity)
		pos := s.transforms.WorldPosition(id)
		switch l.Kind {
		case components.LightAmbient:
			s.lights.ambient = s.lights.ambient.Add(c)
		case components.LightDirectional:
			s.lights.dirs = append(s.lights.dirs, dirLight{dir: pos.Norm(), color: c})
		default:
			s.lights.points = append(s.lights.points, pointLight{pos: pos, color: c.Scale(pointLightScale), distance: l.Distance})
		}
	}
}

// meshFor 返回形状的网格（按组件值缓存）
func (s *RenderSystem) meshFor(shape components.MeshComponent) *mesh.Mesh {
	if m, ok := s.meshes[shape]; ok {
		return m
	}
	m := BuildMesh(shape)
	s.meshes[shape] = m
	return m
}

// BuildMesh 根据形状组件生成网格
func BuildMesh(c components.MeshComponent) *mesh.Mesh {
	switch c.Shape {
	case components.ShapeCylinder:
		return mesh.Cylinder(c.Radius2, c.Radius, c.Height, c.Segments)
	case components.ShapeCone:
		return mesh.Cone(c.Radius, c.Height, c.Segments)
	case components.ShapeSphere:
		return mesh.Sphere(c.Radius, c.Segments)
	case components.ShapePlane:
		return mesh.Plane(c.Size.X, c.Size.Y)
	case components.ShapeCircle:
		return mesh.Circle(c.Radius, c.Segments)
	case components.ShapeRing:
		return mesh.Ring(c.Radius2, c.Radius, c.Segments)
	case components.ShapeTorus:
		return mesh.Torus(c.Radius, c.Radius2, c.Segments2, c.Segments, c.Arc)
	case components.ShapeGrid:
		return mesh.Grid(c.Size.X, c.Size.Y, c.Segments)
	case components.ShapeOutline:
		return mesh.Outline(c.Size.X, c.Size.Y)
	default:
		return mesh.Box(c.Size.X, c.Size.Y, c.Size.Z)
	}
}

func (s *RenderSystem) collectMesh(pose math3d.Pose, m *mesh.Mesh, mat *components.MaterialComponent) {
	base := utils.ToRGB(mat.Color)
	emissive := utils.ToRGB(mat.Emissive).Scale(mat.EmissiveIntensity)
	eye := s.camera.Eye()

	for _, tri := range m.Triangles {
		var world [3]math3d.Vec3
		for i, v := range tri {
			world[i] = pose.Apply(v.Pos)
		}
		normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0])).Norm()
		centroid := world[0].Add(world[1]).Add(world[2]).Scale(1.0 / 3)
		if normal.Dot(eye.Sub(centroid)) < 0 {
			if m.Closed && !mat.DoubleSided {
				continue
			}
			normal = normal.Scale(-1)
		}

		p := primitive{n: 3, texture: mat.Texture}
		ok := true
		for i, v := range tri {
			view := s.camera.ToView(world[i])
			x, y, visible := s.camera.ProjectView(view)
			if !visible {
				ok = false
				break
			}
			p.depth += view.Z / 3
			p.verts[i] = ebiten.Vertex{DstX: float32(x), DstY: float32(y), SrcX: float32(v.U), SrcY: float32(v.V)}
		}
		if !ok {
			continue
		}

		c := base
		if !mat.Unlit {
			c = base.Mul(s.illuminate(centroid, normal))
		}
		c = s.fog(c.Add(emissive), p.depth)
		for i := 0; i < 3; i++ {
			setColor(&p.verts[i], c, mat.Opacity)
		}
		s.prims = append(s.prims, p)
		s.stats.Triangles++
	}

	if len(m.Segments) > 0 {
		c := base.Add(emissive)
		for _, seg := range m.Segments {
			s.collectLine(pose.Apply(seg[0]), pose.Apply(seg[1]), c, mat.Opacity)
		}
	}
}

// illuminate 计算点 p（法线 n）处的入射光
func (s *RenderSystem) illuminate(p, n math3d.Vec3) utils.RGB {
	total := s.lights.ambient
	for _, d := range s.lights.dirs {
		if k := n.Dot(d.dir); k > 0 {
			total = total.Add(d.color.Scale(k))
		}
	}
	for _, l := range s.lights.points {
		toLight := l.pos.Sub(p)
		dist := toLight.Len()
		k := n.Dot(toLight.Norm())
		if k <= 0 {
			continue
		}
		att := Attenuation(dist, l.distance)
		if att <= 0 {
			continue
		}
		total = total.Add(l.color.Scale(k * att))
	}
	return total
}

// Attenuation 点光源衰减：有效距离内按 (1-d/range)² 衰减，range 为 0 表示不衰减
func Attenuation(dist, lightRange float64) float64 {
	if lightRange <= 0 {
		return 1
	}
	if dist >= lightRange {
		return 0
	}
	k := 1 - dist/lightRange
	return k * k
}

// FogFactor 线性雾浓度 [0, 1]
func FogFactor(depth, near, far float64) float64 {
	if far <= near {
		return 0
	}
	return utils.Clamp((depth-near)/(far-near), 0, 1)
}

func (s *RenderSystem) fog(c utils.RGB, depth float64) utils.RGB {
	return c.Lerp(s.background, FogFactor(depth, s.fogNear, s.fogFar))
}

func setColor(v *ebiten.Vertex, c utils.RGB, alpha float64) {
	v.ColorR = float32(utils.Clamp(c.R, 0, 1))
	v.ColorG = float32(utils.Clamp(c.G, 0, 1))
	v.ColorB = float32(utils.Clamp(c.B, 0, 1))
	v.ColorA = float32(utils.Clamp(alpha, 0, 1))
}

// collectLine 把线段投影为一条细四边形
func (s *RenderSystem) collectLine(a, b math3d.Vec3, c utils.RGB, opacity float64) {
	if opacity <= 0 {
		return
	}
	ax, ay, da, okA := s.camera.Project(a)
	bx, by, db, okB := s.camera.Project(b)
	if !okA || !okB {
		return
	}
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		return
	}
	nx, ny := -dy/l*lineHalfWidth, dx/l*lineHalfWidth

	depth := (da + db) / 2
	c = s.fog(c, depth)
	p := primitive{depth: depth, n: 4}
	corners := [4][2]float64{{ax + nx, ay + ny}, {bx + nx, by + ny}, {ax - nx, ay - ny}, {bx - nx, by - ny}}
	for i, xy := range corners {
		p.verts[i] = ebiten.Vertex{DstX: float32(xy[0]), DstY: float32(xy[1]), SrcX: 0.5, SrcY: 0.5}
		setColor(&p.verts[i], c, opacity)
	}
	s.prims = append(s.prims, p)
	s.stats.Lines++
}

// collectParticle 把粒子投影为朝向相机的光晕四边形
func (s *RenderSystem) collectParticle(pos math3d.Vec3, c color.RGBA, vis *components.ParticleVisualComponent) {
	if vis.Opacity <= 0 || vis.Size <= 0 {
		return
	}
	x, y, depth, ok := s.camera.Project(pos)
	if !ok {
		return
	}
	r := vis.Size * glowScale * s.camera.PixelScale(depth)
	if x+r < 0 || y+r < 0 || x-r > s.camera.Width || y-r > s.camera.Height {
		return
	}

	// 加法混合：颜色预乘不透明度，雾越浓光晕越暗
	k := vis.Opacity * (1 - FogFactor(depth, s.fogNear, s.fogFar))
	rgb := utils.ToRGB(c).Scale(k * (0.5 + 0.5*vis.Emissive))
	p := primitive{depth: depth, n: 4, glow: true}
	corners := [4][4]float64{{-1, -1, 0, 0}, {1, -1, 1, 0}, {-1, 1, 0, 1}, {1, 1, 1, 1}}
	for i, q := range corners {
		p.verts[i] = ebiten.Vertex{DstX: float32(x + q[0]*r), DstY: float32(y + q[1]*r), SrcX: float32(q[2]), SrcY: float32(q[3])}
		setColor(&p.verts[i], rgb, 1)
	}
	s.prims = append(s.prims, p)
	s.stats.Particles++
}

// collectPanel 文字面板始终朝向相机，每行按投影尺寸缩放
func (s *RenderSystem) collectPanel(pose math3d.Pose, panel *components.StatPanelComponent) {
	for _, line := range panel.Lines {
		x, y, depth, ok := s.camera.Project(pose.Apply(math3d.V3(0, line.OffsetY, 0)))
		if !ok {
			continue
		}
		px := line.Size * s.camera.PixelScale(depth)
		if px < minLabelPixels {
			continue
		}
		// ScaleWithColor 需要预乘颜色
		c := s.fog(utils.ToRGB(line.Color), depth)
		alpha := 1 - FogFactor(depth, s.fogNear, s.fogFar)*0.5
		s.prims = append(s.prims, primitive{
			depth: depth,
			label: &label{text: line.Text, x: x, y: y, pixels: px, color: c.Scale(alpha).RGBA(alpha)},
		})
		s.stats.Labels++
	}
}

// flushAll 按顺序绘制图元，合并相同贴图和混合方式的相邻图元
func (s *RenderSystem) flushAll(screen *ebiten.Image) {
	s.ensureImages()

	var batchImage *ebiten.Image
	batchGlow := false
	flush := func() {
		if len(s.indices) == 0 {
			return
		}
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		if batchGlow {
			// 加法混合模式（发光粒子）
			op.Blend = ebiten.Blend{
				BlendFactorSourceRGB:        ebiten.BlendFactorOne,
				BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
				BlendOperationRGB:           ebiten.BlendOperationAdd,
				BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
				BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
				BlendOperationAlpha:         ebiten.BlendOperationAdd,
			}
		}
		screen.DrawTriangles(s.vertices, s.indices, batchImage, op)
		s.stats.Batches++
		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
	}

	for i := range s.prims {
		p := &s.prims[i]
		if p.label != nil {
			flush()
			s.drawLabel(screen, p.label)
			continue
		}

		img := s.imageFor(p)
		if img != batchImage || p.glow != batchGlow || len(s.vertices)+p.n > maxBatchVertices {
			flush()
			batchImage, batchGlow = img, p.glow
		}

		// 贴图坐标从 [0,1] 换算到像素；纯色图只采样中心区域
		b := img.Bounds()
		w, h := float32(b.Dx()), float32(b.Dy())
		base := uint16(len(s.vertices))
		for j := 0; j < p.n; j++ {
			v := p.verts[j]
			if img == s.white {
				v.SrcX, v.SrcY = 1+v.SrcX, 1+v.SrcY
			} else {
				v.SrcX, v.SrcY = float32(b.Min.X)+v.SrcX*w, float32(b.Min.Y)+v.SrcY*h
			}
			s.vertices = append(s.vertices, v)
		}
		if p.n == 3 {
			s.indices = append(s.indices, base, base+1, base+2)
		} else {
			s.indices = append(s.indices, base, base+1, base+2, base+1, base+3, base+2)
		}
	}
	flush()
}

func (s *RenderSystem) imageFor(p *primitive) *ebiten.Image {
	if p.glow {
		return s.glow
	}
	if p.texture == "" || s.loadImage == nil {
		return s.white
	}
	img, ok := s.textures[p.texture]
	if !ok {
		img = s.loadImage(p.texture)
		if img == nil {
			log.Printf("[RenderSystem] texture %s unavailable, using flat color", p.texture)
		}
		s.textures[p.texture] = img
	}
	if img == nil {
		return s.white
	}
	return img
}

func (s *RenderSystem) drawLabel(screen *ebiten.Image, l *label) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	k := l.pixels / config.LabelBaseFontSize
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(l.x, l.y)
	op.ColorScale.ScaleWithColor(l.color)
	text.Draw(screen, l.text, s.face, op)
}

// ensureImages 延迟创建纯色图和光晕贴图
func (s *RenderSystem) ensureImages() {
	if s.white == nil {
		s.white = ebiten.NewImage(3, 3)
		s.white.Fill(color.White)
	}
	if s.glow == nil {
		s.glow = ebiten.NewImageFromImage(GlowSprite(32))
	}
}

// GlowSprite 生成径向渐变的白色光晕
func GlowSprite(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			k := utils.Clamp(1-d, 0, 1)
			a := uint8(255 * k * k)
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}

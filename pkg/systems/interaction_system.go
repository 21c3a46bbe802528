package systems

import (
	"log"
	"math"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

// PointerInput 一帧的指针状态（已区分拖拽与点击）
type PointerInput struct {
	X, Y float64
	// Active 指针在窗口内且未在拖拽相机
	Active bool
	// Click 本帧完成了一次点击
	Click bool
}

// depthTieEpsilon 深度差小于该值的命中视为重叠
const depthTieEpsilon = 1e-3

// InteractionSystem 悬停 / 点击跟踪
//
// 同一时刻最多一个元素处于悬停状态：取指针下最近的元素，
// 深度相同时取最近一次进入悬停的元素。HoverableComponent 的
// Hovered / Toggled 只由本系统写入。
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	transforms    *TransformSystem
	camera        *math3d.Camera

	hovered ecs.EntityID
	seq     uint64
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(em *ecs.EntityManager, ts *TransformSystem, cam *math3d.Camera) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		transforms:    ts,
		camera:        cam,
	}
}

// Update 拾取指针下的元素并更新悬停 / 点击状态
func (s *InteractionSystem) Update(in PointerInput) {
	if !in.Active {
		s.Hover(0)
		return
	}
	s.Hover(s.Pick(in.X, in.Y))
	if in.Click {
		s.Click()
	}
}

// Hovered 返回当前悬停的元素（0 表示没有）
func (s *InteractionSystem) Hovered() ecs.EntityID {
	if s.hovered != 0 && !ecs.HasComponent[*components.HoverableComponent](s.entityManager, s.hovered) {
		s.hovered = 0
	}
	return s.hovered
}

// Affordance 返回当前悬停元素声明的指针样式
func (s *InteractionSystem) Affordance() components.Affordance {
	if h, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, s.Hovered()); ok {
		return h.Affordance
	}
	return components.AffordanceDefault
}

// Hover 把悬停状态切换到 id（0 表示清除）
//
// 先对旧元素触发退出，再对新元素触发进入。
func (s *InteractionSystem) Hover(id ecs.EntityID) {
	current := s.Hovered()
	if id == current {
		return
	}

	if old, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, current); ok {
		old.Hovered = false
		if old.OnHoverChange != nil {
			old.OnHoverChange(false)
		}
	}
	s.hovered = 0

	next, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, id)
	if !ok {
		return
	}
	s.seq++
	next.Hovered = true
	next.EnteredSeq = s.seq
	s.hovered = id
	if next.OnHoverChange != nil {
		next.OnHoverChange(true)
	}
}

// Click 对当前悬停元素执行点击：可切换元素翻转 Toggled
func (s *InteractionSystem) Click() {
	h, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, s.Hovered())
	if !ok || !h.Toggleable {
		return
	}

	h.Toggled = !h.Toggled
	log.Printf("[InteractionSystem] %s toggled=%v", h.Name, h.Toggled)
	if h.OnToggle != nil {
		h.OnToggle(h.Toggled)
	}
}

// Pick 返回屏幕坐标 (x, y) 下的交互元素（0 表示没有）
func (s *InteractionSystem) Pick(x, y float64) ecs.EntityID {
	var best ecs.EntityID
	bestDepth := math.Inf(1)
	var bestSeq uint64

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.HoverableComponent](s.entityManager) {
		if !s.transforms.IsVisible(id) {
			continue
		}
		h, _ := ecs.GetComponent[*components.HoverableComponent](s.entityManager, id)
		depth, hit := s.hitTest(id, h, x, y)
		if !hit {
			continue
		}
		switch {
		case depth < bestDepth-depthTieEpsilon:
		case depth <= bestDepth+depthTieEpsilon && h.EnteredSeq > bestSeq:
		default:
			continue
		}
		best, bestDepth, bestSeq = id, math.Min(depth, bestDepth), h.EnteredSeq
	}
	return best
}

// hitTest 把拾取盒的 8 个角投影到屏幕，检查 (x, y) 是否落在投影包围矩形内
// 返回盒子中心的视深
func (s *InteractionSystem) hitTest(id ecs.EntityID, h *components.HoverableComponent, x, y float64) (float64, bool) {
	pose := s.transforms.WorldPose(id)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for i := 0; i < 8; i++ {
		corner := h.Center
		corner.X += sign(i&1) * h.HalfExtents.X
		corner.Y += sign(i&2) * h.HalfExtents.Y
		corner.Z += sign(i&4) * h.HalfExtents.Z
		sx, sy, _, ok := s.camera.Project(pose.Apply(corner))
		if !ok {
			return 0, false
		}
		minX, maxX = math.Min(minX, sx), math.Max(maxX, sx)
		minY, maxY = math.Min(minY, sy), math.Max(maxY, sy)
	}
	if x < minX || x > maxX || y < minY || y > maxY {
		return 0, false
	}
	_, _, depth, _ := s.camera.Project(pose.Apply(h.Center))
	return depth, true
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}

// GateOpen 判断交互元素是否满足门控条件
func GateOpen(em *ecs.EntityManager, source ecs.EntityID, mode components.GateMode) bool {
	h, ok := ecs.GetComponent[*components.HoverableComponent](em, source)
	if !ok {
		return false
	}
	switch mode {
	case components.GateWhileHoveredOrToggled:
		return h.Hovered || h.Toggled
	default:
		return h.Hovered
	}
}

// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标和触摸输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 是否刚刚释放（点击在释放时生效）
	JustReleased bool
	// 按住中（用于相机拖拽）
	Pressed bool
	// 指针位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
	// 窗口是否持有焦点（false 时不做悬停检测）
	InWindow bool
	// 滚轮增量（正值为向上滚动）
	WheelY float64
}

// 保存最后一次触摸位置（触摸释放时 TouchPosition 已不可用）
var (
	lastTouchX, lastTouchY int
	touched                bool
)

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{InWindow: true}
	_, state.WheelY = ebiten.Wheel()

	// 首先检查触摸输入（移动设备）
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		state.JustReleased = true
		state.X, state.Y = lastTouchX, lastTouchY
		state.IsTouching = true
		return state
	}
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY, touched = state.X, state.Y, true
		state.IsTouching = true
		state.Pressed = true
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return state
	}

	// 移动端没有悬停：指针停在最后一次触摸的位置，点过的元素保持悬停
	if IsMobile() {
		state.X, state.Y = lastTouchX, lastTouchY
		state.InWindow = touched
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.InWindow = ebiten.IsFocused()
	return state
}

// ============================================================================
// 拖拽跟踪 - 区分“点击”和“拖拽旋转相机”
// ============================================================================

// DragThreshold 指针移动超过该像素距离即视为拖拽，不再触发点击
const DragThreshold = 6

// DragTracker 跟踪一次按下-释放之间的拖拽
type DragTracker struct {
	active         bool
	dragging       bool
	startX, startY int
	lastX, lastY   int
}

// Update 输入一帧状态，返回本帧的拖拽位移（像素）
func (d *DragTracker) Update(in InputState) (dx, dy float64) {
	switch {
	case in.JustPressed:
		d.active = true
		d.dragging = false
		d.startX, d.startY = in.X, in.Y
		d.lastX, d.lastY = in.X, in.Y
	case d.active && in.Pressed:
		dx, dy = float64(in.X-d.lastX), float64(in.Y-d.lastY)
		d.lastX, d.lastY = in.X, in.Y
		if abs(in.X-d.startX) > DragThreshold || abs(in.Y-d.startY) > DragThreshold {
			d.dragging = true
		}
	case d.active && in.JustReleased:
		d.active = false
	case !in.Pressed:
		d.active = false
		d.dragging = false
	}
	return dx, dy
}

// IsDragging 本次按下是否已经变成拖拽
func (d *DragTracker) IsDragging() bool {
	return d.dragging
}

// Click 将输入转换为点击：释放且未发生拖拽
func (d *DragTracker) Click(in InputState) bool {
	return in.JustReleased && !d.dragging
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package systems

import (
	"github.com/decker502/tearoom/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// CursorSystem 把交互提示应用到窗口光标
//
// 这是唯一调用 ebiten.SetCursorShape 的地方；只在提示变化时调用。
type CursorSystem struct {
	current components.Affordance
	apply   func(ebiten.CursorShapeType)
}

// NewCursorSystem 创建光标系统
func NewCursorSystem() *CursorSystem {
	return NewCursorSystemWith(ebiten.SetCursorShape)
}

// NewCursorSystemWith 使用自定义的光标设置函数（无窗口环境）
func NewCursorSystemWith(apply func(ebiten.CursorShapeType)) *CursorSystem {
	return &CursorSystem{apply: apply}
}

// Update 应用本帧的交互提示
func (s *CursorSystem) Update(a components.Affordance) {
	if a == s.current {
		return
	}
	s.current = a
	s.apply(cursorShape(a))
}

// Current 返回当前已应用的提示
func (s *CursorSystem) Current() components.Affordance {
	return s.current
}

// Reset 恢复默认光标（场景退出时调用）
func (s *CursorSystem) Reset() {
	s.Update(components.AffordanceDefault)
}

func cursorShape(a components.Affordance) ebiten.CursorShapeType {
	if a == components.AffordancePointer {
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

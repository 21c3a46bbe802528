package components

import "github.com/decker502/tearoom/pkg/ecs"

// LiftComponent 悬停抬升（坐垫）
type LiftComponent struct {
	Source   ecs.EntityID
	IdleY    float64
	HoverY   float64
	Approach float64
}

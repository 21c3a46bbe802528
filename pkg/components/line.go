package components

import (
	"image/color"

	"github.com/decker502/tearoom/pkg/math3d"
)

// LineComponent 父节点空间中的一条线段（连接线）
// 不透明度由 PulseComponent 驱动的 MaterialComponent.Opacity 决定
type LineComponent struct {
	From, To math3d.Vec3
	Color    color.RGBA
}

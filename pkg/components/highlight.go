package components

import (
	"image/color"

	"github.com/decker502/tearoom/pkg/ecs"
)

// MaterialTint 一组可切换的材质参数
type MaterialTint struct {
	Color             color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float64
	Opacity           float64
}

// HighlightComponent 交互配色切换
// Source 满足 Mode（默认悬停）时材质使用 Hover，否则使用 Idle
type HighlightComponent struct {
	Source ecs.EntityID
	Mode   GateMode
	Idle   MaterialTint
	Hover  MaterialTint
}

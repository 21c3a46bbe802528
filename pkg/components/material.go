package components

import "image/color"

// MaterialComponent 表面材质
//
// 最终颜色 = Color·光照 + Emissive·EmissiveIntensity，再叠加雾效。
// Unlit 材质不受光照影响（线框、波纹环等）。
type MaterialComponent struct {
	Color             color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float64

	// Opacity 不透明度 0-1
	Opacity float64

	Unlit       bool
	DoubleSided bool

	// Texture 贴图资源路径（可选）；加载失败时使用占位图
	Texture string
}

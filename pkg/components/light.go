package components

import "image/color"

// LightKind 光源类型
type LightKind int

const (
	LightAmbient LightKind = iota
	// LightDirectional 方向光，方向为从节点世界位置指向原点
	LightDirectional
	// LightPoint 点光源，Distance 为衰减到 0 的距离（0 表示不衰减）
	LightPoint
)

// LightComponent 光源
// 光源位置来自 TransformComponent，Hidden 的光源不参与光照
type LightComponent struct {
	Kind      LightKind
	Color     color.RGBA
	Intensity float64
	Distance  float64
}

package components

// OverlayRootComponent 标记一棵已挂载叠加层子树的根
type OverlayRootComponent struct {
	Name string
}

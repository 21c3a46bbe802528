package components

import "github.com/decker502/tearoom/pkg/math3d"

// ShapeKind 几何体类型
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCylinder
	ShapeCone
	ShapeSphere
	ShapePlane
	ShapeCircle
	ShapeRing
	ShapeTorus
	// ShapeGrid 线框网格（仅线段）
	ShapeGrid
	// ShapeOutline 矩形边框（仅线段）
	ShapeOutline
)

// MeshComponent 几何体描述
//
// 字段含义随 Shape 变化：
//   - Box: Size 为长宽高
//   - Plane / Grid / Outline: Size.X × Size.Y，Grid 的格数为 Segments
//   - Cylinder: Radius 底半径，Radius2 顶半径，Height 高度
//   - Cone / Sphere / Circle: Radius
//   - Ring: Radius 外半径，Radius2 内半径
//   - Torus: Radius 主半径，Radius2 管半径，Segments2 管截面段数，Arc 弧度（0 为整圈）
//
// 该结构可比较，渲染系统以它作为几何缓存的键。
type MeshComponent struct {
	Shape     ShapeKind
	Size      math3d.Vec3
	Radius    float64
	Radius2   float64
	Height    float64
	Segments  int
	Segments2 int
	Arc       float64
}

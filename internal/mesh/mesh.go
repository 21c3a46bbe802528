// Package mesh generates the triangle lists of the primitive shapes the tea
// room is built from. Shapes follow the usual conventions of retained-mode
// scene graphs: boxes, spheres and cylinders are centred on the origin with
// the cylinder axis along Y; planes, circles, rings and tori lie in the XY
// plane facing +Z.
package mesh

import (
	"math"

	"github.com/decker502/tearoom/pkg/math3d"
)

// Vertex is a position plus texture coordinates in [0,1].
type Vertex struct {
	Pos  math3d.Vec3
	U, V float64
}

// Triangle is three vertices.
type Triangle [3]Vertex

// Normal returns the unnormalised face normal (B-A)×(C-A).
func (t Triangle) Normal() math3d.Vec3 {
	return t[1].Pos.Sub(t[0].Pos).Cross(t[2].Pos.Sub(t[0].Pos))
}

// Centroid returns the average of the three positions.
func (t Triangle) Centroid() math3d.Vec3 {
	return t[0].Pos.Add(t[1].Pos).Add(t[2].Pos).Scale(1.0 / 3)
}

// Segment is a line between two points.
type Segment [2]math3d.Vec3

// Mesh is the geometry of one shape in its local space.
type Mesh struct {
	Triangles []Triangle
	Segments  []Segment

	// Closed meshes have outward-facing triangles and may be back-face culled.
	Closed bool
}

// Bounds returns the axis-aligned bounding box of every vertex.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	first := true
	grow := func(p math3d.Vec3) {
		if first {
			min, max = p, p
			first = false
			return
		}
		min = math3d.V3(math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z))
		max = math3d.V3(math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z))
	}
	for _, t := range m.Triangles {
		for _, v := range t {
			grow(v.Pos)
		}
	}
	for _, s := range m.Segments {
		grow(s[0])
		grow(s[1])
	}
	return min, max
}

func v(x, y, z, u, w float64) Vertex {
	return Vertex{Pos: math3d.V3(x, y, z), U: u, V: w}
}

// quad appends two triangles a-b-c, a-c-d.
func quad(tris []Triangle, a, b, c, d Vertex) []Triangle {
	return append(tris, Triangle{a, b, c}, Triangle{a, c, d})
}

// orientOutward flips triangles whose normal points towards the origin.
// Only valid for shapes that are star-shaped around the origin.
func orientOutward(tris []Triangle) {
	for i, t := range tris {
		if t.Normal().Dot(t.Centroid()) < 0 {
			tris[i][1], tris[i][2] = t[2], t[1]
		}
	}
}

func clampSegments(n, min int) int {
	if n < min {
		return min
	}
	return n
}

// Box returns a w×h×d box.
func Box(w, h, d float64) *Mesh {
	x, y, z := w/2, h/2, d/2
	var tris []Triangle
	// +Z / -Z
	tris = quad(tris, v(-x, -y, z, 0, 1), v(x, -y, z, 1, 1), v(x, y, z, 1, 0), v(-x, y, z, 0, 0))
	tris = quad(tris, v(x, -y, -z, 0, 1), v(-x, -y, -z, 1, 1), v(-x, y, -z, 1, 0), v(x, y, -z, 0, 0))
	// +X / -X
	tris = quad(tris, v(x, -y, z, 0, 1), v(x, -y, -z, 1, 1), v(x, y, -z, 1, 0), v(x, y, z, 0, 0))
	tris = quad(tris, v(-x, -y, -z, 0, 1), v(-x, -y, z, 1, 1), v(-x, y, z, 1, 0), v(-x, y, -z, 0, 0))
	// +Y / -Y
	tris = quad(tris, v(-x, y, z, 0, 1), v(x, y, z, 1, 1), v(x, y, -z, 1, 0), v(-x, y, -z, 0, 0))
	tris = quad(tris, v(-x, -y, -z, 0, 1), v(x, -y, -z, 1, 1), v(x, -y, z, 1, 0), v(-x, -y, z, 0, 0))
	orientOutward(tris)
	return &Mesh{Triangles: tris, Closed: true}
}

// Cylinder returns a capped cylinder (or frustum) along Y.
// A zero top radius gives a cone.
func Cylinder(radiusTop, radiusBottom, height float64, segments int) *Mesh {
	segments = clampSegments(segments, 3)
	h := height / 2
	var tris []Triangle
	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		u0, u1 := float64(i)/float64(segments), float64(i+1)/float64(segments)

		bot0 := v(radiusBottom*s0, -h, radiusBottom*c0, u0, 1)
		bot1 := v(radiusBottom*s1, -h, radiusBottom*c1, u1, 1)
		top0 := v(radiusTop*s0, h, radiusTop*c0, u0, 0)
		top1 := v(radiusTop*s1, h, radiusTop*c1, u1, 0)

		if radiusTop > 0 {
			tris = quad(tris, bot0, bot1, top1, top0)
			tris = append(tris, Triangle{v(0, h, 0, 0.5, 0), top0, top1})
		} else {
			tris = append(tris, Triangle{bot0, bot1, top0})
		}
		if radiusBottom > 0 {
			tris = append(tris, Triangle{v(0, -h, 0, 0.5, 1), bot1, bot0})
		}
	}
	orientOutward(tris)
	return &Mesh{Triangles: tris, Closed: true}
}

// Cone returns a cone with its base at -height/2 and apex at +height/2.
func Cone(radius, height float64, segments int) *Mesh {
	return Cylinder(0, radius, height, segments)
}

// Sphere returns a UV sphere.
func Sphere(radius float64, segments int) *Mesh {
	segments = clampSegments(segments, 4)
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}
	point := func(i, j int) Vertex {
		theta := float64(j) / float64(rings) * math.Pi
		phi := float64(i) / float64(segments) * 2 * math.Pi
		st, ct := math.Sincos(theta)
		sp, cp := math.Sincos(phi)
		return v(radius*st*cp, radius*ct, radius*st*sp, float64(i)/float64(segments), float64(j)/float64(rings))
	}
	var tris []Triangle
	for j := 0; j < rings; j++ {
		for i := 0; i < segments; i++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			switch j {
			case 0:
				tris = append(tris, Triangle{a, c, d})
			case rings - 1:
				tris = append(tris, Triangle{a, b, c})
			default:
				tris = quad(tris, a, b, c, d)
			}
		}
	}
	orientOutward(tris)
	return &Mesh{Triangles: tris, Closed: true}
}

// Plane returns a w×h rectangle in XY.
func Plane(w, h float64) *Mesh {
	x, y := w/2, h/2
	tris := quad(nil, v(-x, -y, 0, 0, 1), v(x, -y, 0, 1, 1), v(x, y, 0, 1, 0), v(-x, y, 0, 0, 0))
	return &Mesh{Triangles: tris}
}

// Grid returns the wireframe of a w×h plane split into div×div cells.
func Grid(w, h float64, div int) *Mesh {
	div = clampSegments(div, 1)
	x, y := w/2, h/2
	var segs []Segment
	for i := 0; i <= div; i++ {
		t := float64(i) / float64(div)
		segs = append(segs,
			Segment{math3d.V3(-x+t*w, -y, 0), math3d.V3(-x+t*w, y, 0)},
			Segment{math3d.V3(-x, -y+t*h, 0), math3d.V3(x, -y+t*h, 0)},
		)
	}
	return &Mesh{Segments: segs}
}

// Outline returns the four edges of a w×h rectangle in XY.
func Outline(w, h float64) *Mesh {
	x, y := w/2, h/2
	a, b := math3d.V3(-x, -y, 0), math3d.V3(x, -y, 0)
	c, d := math3d.V3(x, y, 0), math3d.V3(-x, y, 0)
	return &Mesh{Segments: []Segment{{a, b}, {b, c}, {c, d}, {d, a}}}
}

// Circle returns a filled disc in XY.
func Circle(radius float64, segments int) *Mesh {
	return Ring(0, radius, segments)
}

// Ring returns an annulus in XY. A zero inner radius gives a disc.
func Ring(inner, outer float64, segments int) *Mesh {
	segments = clampSegments(segments, 3)
	var tris []Triangle
	for i := 0; i < segments; i++ {
		s0, c0 := math.Sincos(float64(i) / float64(segments) * 2 * math.Pi)
		s1, c1 := math.Sincos(float64(i+1) / float64(segments) * 2 * math.Pi)
		o0 := v(outer*c0, outer*s0, 0, 0.5+c0/2, 0.5-s0/2)
		o1 := v(outer*c1, outer*s1, 0, 0.5+c1/2, 0.5-s1/2)
		if inner <= 0 {
			tris = append(tris, Triangle{v(0, 0, 0, 0.5, 0.5), o0, o1})
			continue
		}
		k := inner / outer
		i0 := v(inner*c0, inner*s0, 0, 0.5+k*c0/2, 0.5-k*s0/2)
		i1 := v(inner*c1, inner*s1, 0, 0.5+k*c1/2, 0.5-k*s1/2)
		tris = quad(tris, i0, o0, o1, i1)
	}
	return &Mesh{Triangles: tris}
}

// Torus returns a torus (or a partial one when arc < 2π) around the Z axis.
func Torus(radius, tube float64, radialSegments, tubularSegments int, arc float64) *Mesh {
	radialSegments = clampSegments(radialSegments, 3)
	tubularSegments = clampSegments(tubularSegments, 3)
	if arc <= 0 || arc > 2*math.Pi {
		arc = 2 * math.Pi
	}
	point := func(i, j int) Vertex {
		u := float64(i) / float64(tubularSegments) * arc
		w := float64(j) / float64(radialSegments) * 2 * math.Pi
		su, cu := math.Sincos(u)
		sw, cw := math.Sincos(w)
		r := radius + tube*cw
		return v(r*cu, r*su, tube*sw, float64(i)/float64(tubularSegments), float64(j)/float64(radialSegments))
	}
	var tris []Triangle
	for j := 0; j < radialSegments; j++ {
		for i := 0; i < tubularSegments; i++ {
			tris = quad(tris, point(i, j), point(i+1, j), point(i+1, j+1), point(i, j+1))
		}
	}
	return &Mesh{Triangles: tris}
}

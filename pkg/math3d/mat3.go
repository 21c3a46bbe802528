package math3d

import "math"

// M3 is a 3x3 row-major matrix.
type M3 [3][3]float64

// Identity returns the identity matrix.
func Identity() M3 {
	return M3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulM3 returns m ⋅ n.
func MulM3(m, n M3) (p M3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				p[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return
}

// Apply returns m ⋅ v.
func (m M3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Euler returns the rotation for angles (radians) applied in X, Y, Z
// intrinsic order, the same convention as three.js' default "XYZ".
func Euler(r Vec3) M3 {
	sx, cx := math.Sincos(r.X)
	sy, cy := math.Sincos(r.Y)
	sz, cz := math.Sincos(r.Z)
	rx := M3{{1, 0, 0}, {0, cx, -sx}, {0, sx, cx}}
	ry := M3{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}
	rz := M3{{cz, -sz, 0}, {sz, cz, 0}, {0, 0, 1}}
	return MulM3(MulM3(rx, ry), rz)
}

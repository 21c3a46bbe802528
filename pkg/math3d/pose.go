package math3d

// Pose is an affine transform: p' = Basis·p + Origin.
type Pose struct {
	Basis  M3
	Origin Vec3
}

// IdentityPose returns the pose that leaves points unchanged.
func IdentityPose() Pose {
	return Pose{Basis: Identity()}
}

// Scaling returns the diagonal matrix diag(s).
func Scaling(s Vec3) M3 {
	return M3{{s.X, 0, 0}, {0, s.Y, 0}, {0, 0, s.Z}}
}

// LocalPose builds the pose of a node from its position, Euler rotation and scale,
// applied in scale → rotate → translate order.
func LocalPose(pos, rot, scale Vec3) Pose {
	return Pose{Basis: MulM3(Euler(rot), Scaling(scale)), Origin: pos}
}

// Apply transforms p.
func (p Pose) Apply(v Vec3) Vec3 {
	return p.Basis.Apply(v).Add(p.Origin)
}

// ApplyDir transforms a direction (no translation).
func (p Pose) ApplyDir(v Vec3) Vec3 {
	return p.Basis.Apply(v)
}

// Then returns the pose of a child with local pose c under parent p.
func (p Pose) Then(c Pose) Pose {
	return Pose{Basis: MulM3(p.Basis, c.Basis), Origin: p.Apply(c.Origin)}
}

package math3d

import "math"

// Camera is a perspective camera orbiting a target point, the model
// behind the scene's orbit controls.
type Camera struct {
	Target   Vec3
	Distance float64
	// Azimuth is the angle around the Y axis, measured from +Z.
	Azimuth float64
	// Polar is the angle from the +Y axis.
	Polar float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	Near float64

	Width, Height float64

	eye, right, up, forward Vec3
	focal                   float64
}

// NewCamera returns a camera looking from eye at target.
func NewCamera(eye, target Vec3, fov, width, height float64) *Camera {
	off := eye.Sub(target)
	d := off.Len()
	c := &Camera{
		Target:   target,
		Distance: d,
		FOV:      fov,
		Near:     0.05,
		Width:    width,
		Height:   height,
	}
	if d > 0 {
		c.Polar = math.Acos(clamp(off.Y/d, -1, 1))
		c.Azimuth = math.Atan2(off.X, off.Z)
	}
	c.Update()
	return c
}

// Eye returns the camera position computed by the last Update.
func (c *Camera) Eye() Vec3 {
	return c.eye
}

// Forward returns the unit view direction computed by the last Update.
func (c *Camera) Forward() Vec3 {
	return c.forward
}

// Update recomputes the view basis from the orbit parameters.
// It must be called after changing any exported field.
func (c *Camera) Update() {
	sp, cp := math.Sincos(c.Polar)
	sa, ca := math.Sincos(c.Azimuth)
	off := Vec3{c.Distance * sp * sa, c.Distance * cp, c.Distance * sp * ca}
	c.eye = c.Target.Add(off)
	c.forward = c.Target.Sub(c.eye).Norm()
	c.right = c.forward.Cross(Vec3{0, 1, 0}).Norm()
	if c.right == (Vec3{}) {
		c.right = Vec3{1, 0, 0}
	}
	c.up = c.right.Cross(c.forward)
	c.focal = (c.Height / 2) / math.Tan(c.FOV*math.Pi/360)
}

// ToView returns p in camera space: X right, Y up, Z depth along the view direction.
func (c *Camera) ToView(p Vec3) Vec3 {
	d := p.Sub(c.eye)
	return Vec3{d.Dot(c.right), d.Dot(c.up), d.Dot(c.forward)}
}

// ProjectView maps a camera-space point to screen pixels.
// ok is false when the point is behind the near plane.
func (c *Camera) ProjectView(v Vec3) (x, y float64, ok bool) {
	if v.Z < c.Near {
		return 0, 0, false
	}
	x = c.Width/2 + v.X*c.focal/v.Z
	y = c.Height/2 - v.Y*c.focal/v.Z
	return x, y, true
}

// Project maps a world-space point to screen pixels and returns its view depth.
func (c *Camera) Project(p Vec3) (x, y, depth float64, ok bool) {
	v := c.ToView(p)
	x, y, ok = c.ProjectView(v)
	return x, y, v.Z, ok
}

// PixelScale returns how many pixels one world unit spans at the given depth.
func (c *Camera) PixelScale(depth float64) float64 {
	if depth < c.Near {
		depth = c.Near
	}
	return c.focal / depth
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

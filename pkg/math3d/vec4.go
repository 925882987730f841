package math3d

// Vec4 is a homogeneous point, as produced by a projection matrix.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4FromV3 extends v with w.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// PerspectiveDivide returns (x, y, z) / w, or (x, y, z) unchanged when w
// is zero.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v.W == 0 {
		return Vec3{v.X, v.Y, v.Z}
	}
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
}

// Lerp interpolates from v to to. Clip-space interpolation is linear, so
// clipping can happen before the divide.
func (v Vec4) Lerp(to Vec4, t float64) Vec4 {
	return Vec4{
		v.X + (to.X-v.X)*t,
		v.Y + (to.Y-v.Y)*t,
		v.Z + (to.Z-v.Z)*t,
		v.W + (to.W-v.W)*t,
	}
}

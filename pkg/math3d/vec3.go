// Package math3d provides the vector, matrix and quaternion primitives shared
// by the cameras, the renderer and the model loader.
//
// Matrices are column-major and act on column vectors. The camera helpers
// (LookAtLH, PerspectiveFovLH) build a left-handed system looking down +Z.
package math3d

import "math"

// Vec3 is a point or direction.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func Zero3() Vec3 { return Vec3{} }

// Canonical axes.
func Up() Vec3      { return Vec3{0, 1, 0} }
func Forward() Vec3 { return Vec3{0, 0, 1} }
func Right() Vec3   { return Vec3{1, 0, 0} }

func (a Vec3) Add(b Vec3) Vec3         { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3         { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3    { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Negate() Vec3            { return Vec3{-a.X, -a.Y, -a.Z} }
func (a Vec3) Dot(b Vec3) float64      { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) LenSq() float64          { return a.Dot(a) }
func (a Vec3) Len() float64            { return math.Sqrt(a.LenSq()) }
func (a Vec3) Distance(b Vec3) float64 { return a.Sub(b).Len() }

// Cross returns a × b. In the left-handed system Right × Up = Forward.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Normalize returns a scaled to unit length. The zero vector stays zero so
// an idle keyboard direction never turns into NaN.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// Min and Max are component-wise.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Clamp confines each component of a to [lo, hi].
func (a Vec3) Clamp(lo, hi Vec3) Vec3 {
	return a.Max(lo).Min(hi)
}

package math3d

import "github.com/go-gl/mathgl/mgl64"

// Quat is a quaternion with scalar part W and vector part V.
// Rotation quaternions are expected to be unit length, but nothing here
// renormalizes them.
type Quat struct {
	W float64
	V Vec3
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a rotation of angle radians around axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	return fromGL(mgl64.QuatRotate(angle, toGL(axis.Normalize())))
}

// QuatFromMat4 extracts the rotation of the upper 3x3 of m.
// Translation is ignored; m must be orthonormal for a meaningful result.
func QuatFromMat4(m Mat4) Quat {
	return fromGL(mgl64.Mat4ToQuat(mgl64.Mat4(m)))
}

// Mul returns the Hamilton product q * r. As a rotation it applies r first,
// then q.
func (q Quat) Mul(r Quat) Quat {
	return fromGL(q.gl().Mul(r.gl()))
}

// Conjugate returns the conjugate, the inverse of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, V: q.V.Negate()}
}

// Len returns the magnitude of q.
func (q Quat) Len() float64 {
	return q.gl().Len()
}

// Rotate rotates v by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	r := q.gl().Rotate(toGL(v))
	return Vec3{r[0], r[1], r[2]}
}

// Mat4 returns the rotation matrix of q.
func (q Quat) Mat4() Mat4 {
	return Mat4(q.gl().Mat4())
}

func (q Quat) gl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: toGL(q.V)}
}

func toGL(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromGL(q mgl64.Quat) Quat {
	return Quat{W: q.W, V: Vec3{q.V[0], q.V[1], q.V[2]}}
}

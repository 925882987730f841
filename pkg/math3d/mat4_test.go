package math3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func matNear(a, b Mat4, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestRotationsMatchMathGL(t *testing.T) {
	tests := []struct {
		name string
		got  Mat4
		want mgl64.Mat4
	}{
		{"x", RotateX(0.7), mgl64.HomogRotate3DX(0.7)},
		{"y", RotateY(-1.2), mgl64.HomogRotate3DY(-1.2)},
		{"z", RotateZ(2.5), mgl64.HomogRotate3DZ(2.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !matNear(tc.got, Mat4(tc.want), 1e-12) {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestMulOrder(t *testing.T) {
	// a * b applies b first: scale then translate.
	m := Translate(V3(1, 2, 3)).Mul(ScaleUniform(2))
	if got := m.MulVec3(V3(1, 1, 1)); !vecNear(got, V3(3, 4, 5), 1e-12) {
		t.Errorf("MulVec3 = %v, want (3, 4, 5)", got)
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"affine", Translate(V3(1, -2, 3)).Mul(RotateYawPitchRoll(0.4, -0.2, 0.9)).Mul(Scale(V3(2, 2, 2)))},
		{"view", LookAtLH(V3(3, 2, -10), V3(1, 0, 0), Up())},
		{"projection", PerspectiveFovLH(math.Pi/3, 1.5, 0.1, 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Mul(tc.m.Inverse()); !matNear(got, Identity(), 1e-9) {
				t.Errorf("m * m^-1 = %v, want identity", got)
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("Inverse of zero matrix = %v, want identity", got)
	}
}

func TestThen(t *testing.T) {
	// Move along +Z, then yaw a quarter turn: the point ends up on +X.
	m := Translate(V3(0, 0, 1)).Then(RotateY(math.Pi / 2))
	got := m.MulVec3(Zero3())
	if !vecNear(got, V3(1, 0, 0), 1e-12) {
		t.Errorf("got %v, want (1, 0, 0)", got)
	}
}

func TestRotateYawPitchRoll(t *testing.T) {
	tests := []struct {
		name             string
		yaw, pitch, roll float64
		in, want         Vec3
	}{
		{"identity", 0, 0, 0, Forward(), Forward()},
		{"yaw right", math.Pi / 2, 0, 0, Forward(), V3(1, 0, 0)},
		{"pitch down", 0, math.Pi / 2, 0, Forward(), V3(0, -1, 0)},
		{"roll", 0, 0, math.Pi / 2, Right(), V3(0, 1, 0)},
		{"yaw after pitch", math.Pi / 2, math.Pi / 4, 0, Forward(), V3(math.Sqrt2/2, -math.Sqrt2/2, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotateYawPitchRoll(tc.yaw, tc.pitch, tc.roll).MulVec3Dir(tc.in)
			if !vecNear(got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLookAtLH(t *testing.T) {
	eye := V3(1, 2, -5)
	at := V3(1, 2, 3)
	view := LookAtLH(eye, at, Up())

	if got := view.MulVec3(eye); !vecNear(got, Zero3(), 1e-12) {
		t.Errorf("eye maps to %v, want origin", got)
	}
	if got := view.MulVec3(at); !vecNear(got, V3(0, 0, 8), 1e-12) {
		t.Errorf("target maps to %v, want (0, 0, 8)", got)
	}
	// +X in world stays to the right when looking down +Z.
	if got := view.MulVec3(V3(2, 2, -5)); !vecNear(got, V3(1, 0, 0), 1e-12) {
		t.Errorf("right maps to %v, want (1, 0, 0)", got)
	}

	inv := view.Inverse()
	if got := inv.Basis(2); !vecNear(got, Forward(), 1e-12) {
		t.Errorf("ahead = %v, want (0, 0, 1)", got)
	}
	if got := inv.Translation(); !vecNear(got, eye, 1e-12) {
		t.Errorf("camera position = %v, want %v", got, eye)
	}
}

func TestPerspectiveFovLHDepth(t *testing.T) {
	proj := PerspectiveFovLH(math.Pi/2, 2, 1, 100)

	tests := []struct {
		name  string
		point Vec3
		want  Vec3
	}{
		{"near center", V3(0, 0, 1), V3(0, 0, 0)},
		{"far center", V3(0, 0, 100), V3(0, 0, 1)},
		{"top edge at near", V3(0, 1, 1), V3(0, 1, 0)},
		{"right edge at near", V3(2, 0, 1), V3(1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := proj.MulVec4(V4FromV3(tc.point, 1)).PerspectiveDivide()
			if !vecNear(got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBasis(t *testing.T) {
	m := RotateYawPitchRoll(0.3, 0.2, 0.1)
	for i, axis := range []Vec3{Right(), Up(), Forward()} {
		if got, want := m.Basis(i), m.MulVec3Dir(axis); !vecNear(got, want, 1e-12) {
			t.Errorf("Basis(%d) = %v, want %v", i, got, want)
		}
	}

	m.SetBasis(1, V3(7, 8, 9))
	if got := m.Basis(1); got != V3(7, 8, 9) {
		t.Errorf("SetBasis: got %v", got)
	}
}

func TestVec3Clamp(t *testing.T) {
	lo, hi := V3(-1, -1, -1), V3(1, 1, 1)
	got := V3(-3, 0.5, 2).Clamp(lo, hi)
	if got != V3(-1, 0.5, 1) {
		t.Errorf("got %v, want (-1, 0.5, 1)", got)
	}
}

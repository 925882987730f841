package camera

import (
	"math"
	"testing"

	"github.com/taigrr/arcball/pkg/math3d"
)

func newTestBall() ArcBall {
	a := NewArcBall()
	a.SetWindow(800, 600)
	return a
}

func TestScreenToVector(t *testing.T) {
	a := newTestBall()

	tests := []struct {
		name   string
		sx, sy float64
		want   math3d.Vec3
	}{
		{"center", 400, 300, math3d.V3(0, 0, 1)},
		// x is flipped: right of center maps to -X.
		{"right rim", 400 + 360, 300, math3d.V3(-1, 0, 0)},
		{"below rim", 400, 300 + 270, math3d.V3(0, 1, 0)},
		{"far outside", 400 + 3600, 300, math3d.V3(-1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := a.ScreenToVector(tc.sx, tc.sy)
			if !near3(got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScreenToVectorUnitLength(t *testing.T) {
	a := newTestBall()
	a.SetOffset(10, 20)

	for sx := -200; sx <= 1200; sx += 37 {
		for sy := -200; sy <= 900; sy += 41 {
			v := a.ScreenToVector(float64(sx), float64(sy))
			if math.Abs(v.Len()-1) > 1e-12 {
				t.Fatalf("|ScreenToVector(%d, %d)| = %v", sx, sy, v.Len())
			}
			if v.Z < 0 {
				t.Fatalf("ScreenToVector(%d, %d) below the equator: %v", sx, sy, v)
			}
		}
	}
}

func TestQuatFromBallPointsIdentity(t *testing.T) {
	for _, v := range []math3d.Vec3{
		math3d.V3(0, 0, 1),
		math3d.V3(0.6, 0, 0.8),
		math3d.V3(0, -1, 0),
	} {
		q := QuatFromBallPoints(v, v)
		if math.Abs(q.W-1) > 1e-12 || !near3(q.V, math3d.Zero3(), 1e-12) {
			t.Errorf("QuatFromBallPoints(%v, %v) = %v, want identity", v, v, q)
		}
	}
}

func TestArcBallBeginOutsideWindow(t *testing.T) {
	a := newTestBall()
	a.SetOffset(100, 100)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 500, 400, true},
		{"top-left corner", 100, 100, true},
		{"left of window", 99, 400, false},
		{"right edge is exclusive", 900, 400, false},
		{"below window", 500, 700, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a.End()
			a.Begin(tc.x, tc.y)
			if got := a.IsDragging(); got != tc.want {
				t.Errorf("IsDragging = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestArcBallMoveWithoutDragIsIgnored(t *testing.T) {
	a := newTestBall()
	a.Move(450, 300)
	if a.QuatNow() != math3d.QuatIdentity() {
		t.Errorf("rotation changed without a drag: %v", a.QuatNow())
	}
}

func TestArcBallDrag(t *testing.T) {
	a := newTestBall()
	a.Begin(400, 300)
	a.Move(450, 300)
	a.End()

	q := a.QuatNow()
	if math.Abs(q.Len()-1) > 1e-6 {
		t.Errorf("|q| = %v, want ~1", q.Len())
	}

	// A horizontal drag spins about the vertical axis only.
	if math.Abs(q.V.X) > 1e-12 || math.Abs(q.V.Z) > 1e-12 {
		t.Errorf("unexpected rotation axis: %v", q.V)
	}

	// The point facing the viewer follows the pointer to the right.
	front := a.RotationMatrix().MulVec3Dir(math3d.V3(0, 0, -1))
	if front.X <= 0 {
		t.Errorf("front moved to %v, want +X", front)
	}

	// Ending again is harmless.
	a.End()
	if a.IsDragging() {
		t.Error("still dragging after End")
	}
}

func TestArcBallDragComposesWithPreviousRotation(t *testing.T) {
	a := newTestBall()
	a.Begin(400, 300)
	a.Move(450, 300)
	a.End()
	first := a.QuatNow()

	a.Begin(400, 300)
	a.Move(400, 350)
	a.End()

	// Second drag rotates about X on top of the first.
	ball := QuatFromBallPoints(a.ScreenToVector(400, 300), a.ScreenToVector(400, 350))
	want := ball.Mul(first)
	got := a.QuatNow()
	if math.Abs(got.W-want.W) > 1e-12 || !near3(got.V, want.V, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
	if math.Abs(got.Len()-1) > 1e-6 {
		t.Errorf("|q| = %v, want ~1", got.Len())
	}
}

func TestArcBallClickWithoutMove(t *testing.T) {
	a := newTestBall()
	a.Begin(400, 300)
	a.Move(450, 320)
	a.End()
	before := a.QuatNow()

	// A click elsewhere with no movement leaves the rotation alone.
	a.Begin(600, 200)
	a.End()

	if got := a.QuatNow(); got != before {
		t.Errorf("QuatNow = %v, want %v", got, before)
	}
	if a.RotationMatrix() != before.Mat4() {
		t.Errorf("RotationMatrix changed after a click")
	}
}

func TestArcBallReset(t *testing.T) {
	a := newTestBall()
	a.Begin(400, 300)
	a.Move(500, 350)
	a.Reset()

	if a.IsDragging() {
		t.Error("dragging after Reset")
	}
	if a.QuatNow() != math3d.QuatIdentity() {
		t.Errorf("QuatNow = %v, want identity", a.QuatNow())
	}
	if a.RotationMatrix() != math3d.Identity() {
		t.Errorf("RotationMatrix = %v, want identity", a.RotationMatrix())
	}

	// The window survives a reset.
	a.Begin(400, 300)
	if !a.IsDragging() {
		t.Error("Begin rejected after Reset")
	}
}

func TestArcBallHandleEventTranslation(t *testing.T) {
	a := newTestBall()

	a.HandleEvent(Event{Kind: PointerDown, Button: ButtonRight, X: 400, Y: 300})
	a.HandleEvent(Event{Kind: PointerMove, X: 300, Y: 360})
	a.HandleEvent(Event{Kind: PointerUp, Button: ButtonRight, X: 300, Y: 360})

	// dx = 100/800, dy = -60/600
	want := math3d.V3(-0.25, -0.2, 0)
	if got := a.TranslationMatrix().Translation(); !near3(got, want, 1e-12) {
		t.Errorf("translation = %v, want %v", got, want)
	}
	if got := a.TranslationDeltaMatrix().Translation(); !near3(got, want, 1e-12) {
		t.Errorf("translation delta = %v, want %v", got, want)
	}
	if a.QuatNow() != math3d.QuatIdentity() {
		t.Error("right drag rotated the ball")
	}

	a.HandleEvent(Event{Kind: PointerDown, Button: ButtonMiddle, X: 0, Y: 300})
	a.HandleEvent(Event{Kind: PointerMove, X: 0, Y: 240})

	// dy = 60/600, pushed 5x along Z.
	want = want.Add(math3d.V3(0, 0, 0.5))
	if got := a.TranslationMatrix().Translation(); !near3(got, want, 1e-12) {
		t.Errorf("translation = %v, want %v", got, want)
	}
}

func TestArcBallHandleEventRotation(t *testing.T) {
	a := newTestBall()
	a.HandleEvent(Event{Kind: PointerDown, Button: ButtonLeft, X: 400, Y: 300})
	a.HandleEvent(Event{Kind: PointerMove, X: 420, Y: 310})
	if !a.IsDragging() {
		t.Fatal("left press did not start a drag")
	}
	a.HandleEvent(Event{Kind: CaptureLost})
	if a.IsDragging() {
		t.Error("capture loss did not end the drag")
	}
	if a.QuatNow() == math3d.QuatIdentity() {
		t.Error("drag did not rotate")
	}
	if a.HandleEvent(Event{Kind: KeyDown, Key: KeyW}) {
		t.Error("key event reported as consumed")
	}
}

func near3(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

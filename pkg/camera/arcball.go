package camera

import (
	"image"
	"math"

	"github.com/taigrr/arcball/pkg/math3d"
)

// DefaultBallRadius is the sphere radius as a fraction of half the window.
const DefaultBallRadius = 0.9

// ArcBall maps pointer drags inside a window onto rotations of a virtual
// trackball. Right and middle drags additionally accumulate a translation
// when events are fed through HandleEvent.
type ArcBall struct {
	down, now math3d.Quat
	dragging  bool

	offset        image.Point
	width, height int
	center        math3d.Vec2
	radius        float64

	translationRadius float64
	translation       math3d.Mat4
	translationDelta  math3d.Mat4

	held      Button
	last      image.Point
	downPt    math3d.Vec3
	currentPt math3d.Vec3
}

// NewArcBall returns a reset ball with a zero-sized window. Call SetWindow
// before feeding it pointer input.
func NewArcBall() ArcBall {
	a := ArcBall{radius: DefaultBallRadius}
	a.Reset()
	return a
}

// Reset restores the identity rotation and translation. The window
// configuration is kept.
func (a *ArcBall) Reset() {
	a.down = math3d.QuatIdentity()
	a.now = math3d.QuatIdentity()
	a.dragging = false
	a.held = 0
	a.translationRadius = 1
	a.translation = math3d.Identity()
	a.translationDelta = math3d.Identity()
}

// SetWindow sizes the ball's window with the default radius.
func (a *ArcBall) SetWindow(width, height int) {
	a.SetWindowRadius(width, height, DefaultBallRadius)
}

// SetWindowRadius sizes the ball's window; radius is a fraction of the
// half-extent of each axis.
func (a *ArcBall) SetWindowRadius(width, height int, radius float64) {
	a.width = width
	a.height = height
	a.radius = radius
	a.center = math3d.V2(float64(width)/2, float64(height)/2)
}

// SetOffset moves the window's top-left corner.
func (a *ArcBall) SetOffset(x, y int) {
	a.offset = image.Pt(x, y)
}

// SetTranslationRadius scales right and middle drag translation.
func (a *ArcBall) SetTranslationRadius(r float64) {
	a.translationRadius = r
}

func (a *ArcBall) bounds() image.Rectangle {
	return image.Rectangle{Min: a.offset, Max: a.offset.Add(image.Pt(a.width, a.height))}
}

// ScreenToVector projects a window point onto the unit hemisphere facing
// the viewer. Points outside the ball land on its equator.
func (a *ArcBall) ScreenToVector(sx, sy float64) math3d.Vec3 {
	x := -(sx - float64(a.offset.X) - a.center.X) / (a.radius * a.center.X)
	y := (sy - float64(a.offset.Y) - a.center.Y) / (a.radius * a.center.Y)

	var z float64
	mag := x*x + y*y
	if mag > 1 {
		s := 1 / math.Sqrt(mag)
		x *= s
		y *= s
	} else {
		z = math.Sqrt(1 - mag)
	}

	return math3d.V3(x, y, z)
}

// QuatFromBallPoints returns the rotation taking from to to, both on the
// unit sphere. The result is not renormalized.
func QuatFromBallPoints(from, to math3d.Vec3) math3d.Quat {
	return math3d.Quat{W: from.Dot(to), V: from.Cross(to)}
}

// Begin starts a drag at (x, y). Points outside the window are ignored.
func (a *ArcBall) Begin(x, y int) {
	if !image.Pt(x, y).In(a.bounds()) {
		return
	}
	a.dragging = true
	a.down = a.now
	a.downPt = a.ScreenToVector(float64(x), float64(y))
}

// Move updates the rotation while dragging.
func (a *ArcBall) Move(x, y int) {
	if !a.dragging {
		return
	}
	a.currentPt = a.ScreenToVector(float64(x), float64(y))
	a.now = QuatFromBallPoints(a.downPt, a.currentPt).Mul(a.down)
}

// End finishes a drag.
func (a *ArcBall) End() {
	a.dragging = false
}

// HandleEvent drives the ball directly from pointer events: left drags
// rotate, right drags translate in the view plane and middle drags
// translate in depth. It reports whether the event was consumed.
func (a *ArcBall) HandleEvent(ev Event) bool {
	switch ev.Kind {
	case PointerDown, PointerDoubleClick:
		a.held |= ev.Button & buttonsPointer
		a.last = image.Pt(ev.X, ev.Y)
		if ev.Button == ButtonLeft {
			a.Begin(ev.X, ev.Y)
		}
		return true
	case PointerUp:
		a.held &^= ev.Button
		if ev.Button == ButtonLeft {
			a.End()
		}
		return true
	case CaptureLost:
		a.held = 0
		a.End()
		return true
	case PointerMove:
		switch {
		case a.held&ButtonLeft != 0:
			a.Move(ev.X, ev.Y)
		case a.held&(ButtonRight|ButtonMiddle) != 0:
			a.translate(ev.X, ev.Y)
		}
		return true
	}
	return false
}

func (a *ArcBall) translate(x, y int) {
	if a.width == 0 || a.height == 0 {
		return
	}
	dx := float64(a.last.X-x) * a.translationRadius / float64(a.width)
	dy := float64(a.last.Y-y) * a.translationRadius / float64(a.height)

	if a.held&ButtonRight != 0 {
		a.translationDelta = math3d.Translate(math3d.V3(-2*dx, 2*dy, 0))
	} else {
		a.translationDelta = math3d.Translate(math3d.V3(0, 0, 5*dy))
	}
	a.translation = a.translation.Then(a.translationDelta)
	a.last = image.Pt(x, y)
}

// RotationMatrix returns the current rotation as a matrix.
func (a *ArcBall) RotationMatrix() math3d.Mat4 {
	return a.now.Mat4()
}

// TranslationMatrix returns the accumulated drag translation.
func (a *ArcBall) TranslationMatrix() math3d.Mat4 {
	return a.translation
}

// TranslationDeltaMatrix returns the translation of the latest drag step.
func (a *ArcBall) TranslationDeltaMatrix() math3d.Mat4 {
	return a.translationDelta
}

// IsDragging reports whether a rotation drag is in progress.
func (a *ArcBall) IsDragging() bool {
	return a.dragging
}

// QuatNow returns the current rotation.
func (a *ArcBall) QuatNow() math3d.Quat {
	return a.now
}

// SetQuatNow replaces the current rotation.
func (a *ArcBall) SetQuatNow(q math3d.Quat) {
	a.now = q
}

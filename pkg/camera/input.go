package camera

import (
	"image"
	"math"

	"github.com/taigrr/arcball/pkg/math3d"
)

// CursorWarper moves the host's pointer. Cameras that recenter the cursor
// after every mouse sample call it instead of touching the platform.
type CursorWarper interface {
	WarpCursor(x, y int)
}

// unbounded accepts every pointer position.
var unbounded = image.Rect(math.MinInt, math.MinInt, math.MaxInt, math.MaxInt)

// Input accumulates host events between frames: key states, held buttons,
// wheel rotation and pointer position.
type Input struct {
	Keys Keyboard

	buttons  Button
	wheel    int
	dragRect image.Rectangle
	active   bool

	// pointer is the most recent position reported by an event and sampled
	// the position consumed by the last mouse sample. Both start at the
	// first pointer event seen.
	pointer     image.Point
	sampled     image.Point
	havePointer bool

	resetCursor  bool
	warper       CursorWarper
	cursorBounds image.Rectangle
}

// NewInput creates input state with the default keymap and an unbounded
// drag rectangle.
func NewInput() Input {
	return Input{
		Keys:     NewKeyboard(nil),
		dragRect: unbounded,
		active:   true,
	}
}

// HandleEvent folds ev into the accumulated state.
func (in *Input) HandleEvent(ev Event) {
	switch ev.Kind {
	case KeyDown:
		in.Keys.Press(ev.Key)
	case KeyUp:
		in.Keys.Release(ev.Key)
	case PointerDown, PointerDoubleClick:
		p := image.Pt(ev.X, ev.Y)
		if p.In(in.dragRect) {
			in.buttons |= ev.Button & buttonsPointer
		}
		in.pointer = p
		in.sampled = p
		in.havePointer = true
	case PointerUp:
		in.buttons &^= ev.Button
		in.movePointer(image.Pt(ev.X, ev.Y))
	case PointerMove:
		in.movePointer(image.Pt(ev.X, ev.Y))
	case CaptureLost:
		in.buttons = 0
	case Wheel:
		in.wheel += ev.Wheel
	case Activate:
		in.active = ev.Active
	}
}

func (in *Input) movePointer(p image.Point) {
	in.pointer = p
	if !in.havePointer {
		in.sampled = p
		in.havePointer = true
	}
}

// SampleMouse returns the pointer movement since the previous sample.
// With cursor reset enabled on an active camera, the pointer is warped back
// to the center of the cursor bounds and the next sample measures from
// there.
func (in *Input) SampleMouse() math3d.Vec2 {
	d := in.pointer.Sub(in.sampled)
	in.sampled = in.pointer

	if in.resetCursor && in.active && in.warper != nil {
		b := in.cursorBounds
		c := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
		in.warper.WarpCursor(c.X, c.Y)
		in.pointer = c
		in.sampled = c
		in.havePointer = true
	}

	return math3d.V2(float64(d.X), float64(d.Y))
}

// Buttons returns the mask of held pointer buttons.
func (in *Input) Buttons() Button {
	return in.buttons
}

// Wheel returns the wheel rotation accumulated since ClearWheel.
func (in *Input) Wheel() int {
	return in.wheel
}

// ClearWheel discards accumulated wheel rotation.
func (in *Input) ClearWheel() {
	in.wheel = 0
}

// Active reports whether the host window has focus.
func (in *Input) Active() bool {
	return in.active
}

// DragRect returns the rectangle in which button presses are accepted.
func (in *Input) DragRect() image.Rectangle {
	return in.dragRect
}

// SetDragRect limits button presses to r. An empty r accepts everything.
func (in *Input) SetDragRect(r image.Rectangle) {
	if r.Empty() {
		r = unbounded
	}
	in.dragRect = r
}

// SetCursorWarper installs w to recenter the pointer within bounds.
func (in *Input) SetCursorWarper(w CursorWarper, bounds image.Rectangle) {
	in.warper = w
	in.cursorBounds = bounds
}

// SetResetCursorAfterMove toggles pointer recentering after each sample.
func (in *Input) SetResetCursorAfterMove(enable bool) {
	in.resetCursor = enable
}

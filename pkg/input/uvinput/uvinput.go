// Package uvinput translates terminal events from ultraviolet into camera
// events.
//
// Terminals report mouse positions in cells and most of them never report
// key releases. A Translator scales cells to framebuffer pixels and, until
// the terminal proves it sends releases, treats a key as released once it
// has gone HoldTime without an auto-repeat.
package uvinput

import (
	"time"
	"unicode"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/arcball/pkg/camera"
)

// DefaultHoldTime covers the initial auto-repeat delay of common terminals.
const DefaultHoldTime = 550 * time.Millisecond

// Translator converts uv events. It is not safe for concurrent use; drive
// it from the goroutine that updates the camera.
type Translator struct {
	// ScaleX and ScaleY convert cell coordinates to pixels. The half-block
	// framebuffer has two pixel rows per cell.
	ScaleX, ScaleY int

	HoldTime time.Duration

	held     map[camera.Key]time.Time
	buttons  camera.Button
	releases bool
}

// New returns a Translator for a half-block framebuffer.
func New() *Translator {
	return &Translator{
		ScaleX:   1,
		ScaleY:   2,
		HoldTime: DefaultHoldTime,
		held:     make(map[camera.Key]time.Time),
	}
}

// ReportsReleases reports whether the terminal has sent a key release.
func (t *Translator) ReportsReleases() bool { return t.releases }

// Translate converts ev, received at now, into zero or more camera events.
func (t *Translator) Translate(ev uv.Event, now time.Time) []camera.Event {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return t.keyDown(uv.Key(ev), now)
	case uv.KeyReleaseEvent:
		t.releases = true
		return t.keyUp(uv.Key(ev))
	case uv.MouseClickEvent:
		return t.pointerDown(uv.Mouse(ev))
	case uv.MouseReleaseEvent:
		return t.pointerUp(uv.Mouse(ev))
	case uv.MouseMotionEvent:
		x, y := t.pixel(uv.Mouse(ev))
		return []camera.Event{{Kind: camera.PointerMove, X: x, Y: y}}
	case uv.MouseWheelEvent:
		m := uv.Mouse(ev)
		x, y := t.pixel(m)
		switch m.Button {
		case uv.MouseWheelUp:
			return []camera.Event{{Kind: camera.Wheel, X: x, Y: y, Wheel: camera.WheelDelta}}
		case uv.MouseWheelDown:
			return []camera.Event{{Kind: camera.Wheel, X: x, Y: y, Wheel: -camera.WheelDelta}}
		}
	case uv.FocusEvent:
		return []camera.Event{{Kind: camera.Activate, Active: true}}
	case uv.BlurEvent:
		t.buttons = 0
		out := t.releaseAll()
		return append(out,
			camera.Event{Kind: camera.Activate, Active: false},
			camera.Event{Kind: camera.CaptureLost},
		)
	}
	return nil
}

// Expire releases keys that have been quiet for HoldTime. It does nothing
// once the terminal has reported a real key release.
func (t *Translator) Expire(now time.Time) []camera.Event {
	if t.releases {
		return nil
	}
	var out []camera.Event
	for k, last := range t.held {
		if now.Sub(last) >= t.HoldTime {
			delete(t.held, k)
			out = append(out, camera.Event{Kind: camera.KeyUp, Key: k})
		}
	}
	return out
}

func (t *Translator) keyDown(k uv.Key, now time.Time) []camera.Event {
	var out []camera.Event
	// Terminals rarely report a bare ctrl key; treat ctrl+<key> as holding it.
	if k.Mod.Contains(uv.ModCtrl) && MapKey(k) != camera.KeyControl {
		out = append(out, t.press(camera.KeyControl, now)...)
	}
	return append(out, t.press(MapKey(k), now)...)
}

func (t *Translator) press(k camera.Key, now time.Time) []camera.Event {
	if k == camera.KeyUnknown {
		return nil
	}
	t.held[k] = now
	return []camera.Event{{Kind: camera.KeyDown, Key: k}}
}

func (t *Translator) keyUp(k uv.Key) []camera.Event {
	key := MapKey(k)
	if key == camera.KeyUnknown {
		return nil
	}
	delete(t.held, key)
	return []camera.Event{{Kind: camera.KeyUp, Key: key}}
}

func (t *Translator) releaseAll() []camera.Event {
	var out []camera.Event
	for k := range t.held {
		delete(t.held, k)
		out = append(out, camera.Event{Kind: camera.KeyUp, Key: k})
	}
	return out
}

func (t *Translator) pointerDown(m uv.Mouse) []camera.Event {
	b := MapButton(m.Button)
	if b == 0 {
		return nil
	}
	t.buttons |= b
	x, y := t.pixel(m)
	return []camera.Event{{Kind: camera.PointerDown, X: x, Y: y, Button: b}}
}

// pointerUp handles legacy encodings that do not say which button was
// released by releasing every button still held.
func (t *Translator) pointerUp(m uv.Mouse) []camera.Event {
	x, y := t.pixel(m)
	released := MapButton(m.Button)
	if released == 0 {
		released = t.buttons
	}
	var out []camera.Event
	for _, b := range []camera.Button{camera.ButtonLeft, camera.ButtonMiddle, camera.ButtonRight} {
		if released&b != 0 {
			out = append(out, camera.Event{Kind: camera.PointerUp, X: x, Y: y, Button: b})
		}
	}
	t.buttons &^= released
	return out
}

func (t *Translator) pixel(m uv.Mouse) (int, int) {
	return m.X * t.ScaleX, m.Y * t.ScaleY
}

// MapButton returns the camera button for a uv mouse button, or 0.
func MapButton(b uv.MouseButton) camera.Button {
	switch b {
	case uv.MouseLeft:
		return camera.ButtonLeft
	case uv.MouseMiddle:
		return camera.ButtonMiddle
	case uv.MouseRight:
		return camera.ButtonRight
	default:
		return 0
	}
}

// MapKey returns the camera key for k, ignoring modifiers.
func MapKey(k uv.Key) camera.Key {
	switch k.Code {
	case uv.KeyUp, uv.KeyKpUp:
		return camera.KeyArrowUp
	case uv.KeyDown, uv.KeyKpDown:
		return camera.KeyArrowDown
	case uv.KeyLeft, uv.KeyKpLeft:
		return camera.KeyArrowLeft
	case uv.KeyRight, uv.KeyKpRight:
		return camera.KeyArrowRight
	case uv.KeyPgUp, uv.KeyKpPgUp:
		return camera.KeyPageUp
	case uv.KeyPgDown, uv.KeyKpPgDown:
		return camera.KeyPageDown
	case uv.KeyHome, uv.KeyKpHome:
		return camera.KeyHome
	case uv.KeyLeftCtrl, uv.KeyRightCtrl:
		return camera.KeyControl
	case uv.KeyKp2:
		return camera.KeyNumpad2
	case uv.KeyKp3:
		return camera.KeyNumpad3
	case uv.KeyKp4:
		return camera.KeyNumpad4
	case uv.KeyKp6:
		return camera.KeyNumpad6
	case uv.KeyKp8:
		return camera.KeyNumpad8
	case uv.KeyKp9:
		return camera.KeyNumpad9
	}

	switch unicode.ToLower(k.Code) {
	case 'w':
		return camera.KeyW
	case 'a':
		return camera.KeyA
	case 's':
		return camera.KeyS
	case 'd':
		return camera.KeyD
	case 'q':
		return camera.KeyQ
	case 'e':
		return camera.KeyE
	}
	return camera.KeyUnknown
}

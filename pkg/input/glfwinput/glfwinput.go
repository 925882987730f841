// Package glfwinput feeds GLFW window callbacks to a camera.
//
// GLFW delivers callbacks on the thread that calls glfw.PollEvents, so the
// sink runs there too.
package glfwinput

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/taigrr/arcball/pkg/camera"
)

// Adapter forwards one window's input to a sink and warps its cursor.
type Adapter struct {
	win  *glfw.Window
	sink func(camera.Event)
	x, y int
}

// Attach installs callbacks on win that translate GLFW input and pass it
// to sink. Previously installed callbacks are replaced.
func Attach(win *glfw.Window, sink func(camera.Event)) *Adapter {
	a := &Adapter{win: win, sink: sink}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		a.onKey(key, action)
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		a.onButton(button, action)
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		a.onCursor(xpos, ypos)
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		a.onScroll(yoff)
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		a.onFocus(focused)
	})

	return a
}

// WarpCursor moves the cursor to (x, y) in window coordinates.
func (a *Adapter) WarpCursor(x, y int) {
	a.x, a.y = x, y
	a.win.SetCursorPos(float64(x), float64(y))
}

func (a *Adapter) onKey(key glfw.Key, action glfw.Action) {
	k := MapKey(key)
	if k == camera.KeyUnknown {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		a.sink(camera.Event{Kind: camera.KeyDown, Key: k})
	case glfw.Release:
		a.sink(camera.Event{Kind: camera.KeyUp, Key: k})
	}
}

func (a *Adapter) onButton(button glfw.MouseButton, action glfw.Action) {
	b := MapButton(button)
	if b == 0 {
		return
	}
	kind := camera.PointerDown
	if action == glfw.Release {
		kind = camera.PointerUp
	}
	a.sink(camera.Event{Kind: kind, X: a.x, Y: a.y, Button: b})
}

func (a *Adapter) onCursor(xpos, ypos float64) {
	a.x, a.y = int(xpos), int(ypos)
	a.sink(camera.Event{Kind: camera.PointerMove, X: a.x, Y: a.y})
}

func (a *Adapter) onScroll(yoff float64) {
	delta := int(math.Round(yoff * camera.WheelDelta))
	if delta == 0 {
		return
	}
	a.sink(camera.Event{Kind: camera.Wheel, X: a.x, Y: a.y, Wheel: delta})
}

func (a *Adapter) onFocus(focused bool) {
	a.sink(camera.Event{Kind: camera.Activate, Active: focused})
	if !focused {
		a.sink(camera.Event{Kind: camera.CaptureLost})
	}
}

// MapButton returns the camera button for a GLFW mouse button, or 0.
func MapButton(b glfw.MouseButton) camera.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return camera.ButtonLeft
	case glfw.MouseButtonMiddle:
		return camera.ButtonMiddle
	case glfw.MouseButtonRight:
		return camera.ButtonRight
	default:
		return 0
	}
}

var keys = map[glfw.Key]camera.Key{
	glfw.KeyW:            camera.KeyW,
	glfw.KeyA:            camera.KeyA,
	glfw.KeyS:            camera.KeyS,
	glfw.KeyD:            camera.KeyD,
	glfw.KeyQ:            camera.KeyQ,
	glfw.KeyE:            camera.KeyE,
	glfw.KeyUp:           camera.KeyArrowUp,
	glfw.KeyDown:         camera.KeyArrowDown,
	glfw.KeyLeft:         camera.KeyArrowLeft,
	glfw.KeyRight:        camera.KeyArrowRight,
	glfw.KeyPageUp:       camera.KeyPageUp,
	glfw.KeyPageDown:     camera.KeyPageDown,
	glfw.KeyHome:         camera.KeyHome,
	glfw.KeyLeftControl:  camera.KeyControl,
	glfw.KeyRightControl: camera.KeyControl,
	glfw.KeyKP2:          camera.KeyNumpad2,
	glfw.KeyKP3:          camera.KeyNumpad3,
	glfw.KeyKP4:          camera.KeyNumpad4,
	glfw.KeyKP6:          camera.KeyNumpad6,
	glfw.KeyKP8:          camera.KeyNumpad8,
	glfw.KeyKP9:          camera.KeyNumpad9,
}

// MapKey returns the camera key for a GLFW key.
func MapKey(k glfw.Key) camera.Key {
	return keys[k]
}

package camera

import (
	"image"
	"log/slog"

	"github.com/taigrr/arcball/pkg/math3d"
)

// configurable is satisfied by both cameras. Options go through it so that
// camera-specific overrides of SetViewParams and SetDragRect run.
type configurable interface {
	SetViewParams(eye, lookAt math3d.Vec3)
	SetDragRect(r image.Rectangle)
	base() *rig
}

func (r *rig) base() *rig { return r }

// Option configures a camera at construction.
type Option func(configurable)

// WithViewParams sets the home pose.
func WithViewParams(eye, lookAt math3d.Vec3) Option {
	return func(c configurable) {
		c.SetViewParams(eye, lookAt)
	}
}

// WithProjParams sets the lens.
func WithProjParams(fov, aspect, near, far float64) Option {
	return func(c configurable) {
		c.base().SetProjParams(fov, aspect, near, far)
	}
}

// WithDragRect limits where button presses start drags.
func WithDragRect(r image.Rectangle) Option {
	return func(c configurable) {
		c.SetDragRect(r)
	}
}

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(c configurable) {
		c.base().SetLogger(l)
	}
}

// WithKeymap replaces the default key bindings.
func WithKeymap(k Keymap) Option {
	return func(c configurable) {
		c.base().SetKeymap(k)
	}
}

// WithScalers sets rotation (radians per pixel) and movement (units per
// second) speeds.
func WithScalers(rotation, move float64) Option {
	return func(c configurable) {
		c.base().SetScalers(rotation, move)
	}
}

// WithDrag enables velocity damping over dragTime seconds.
func WithDrag(dragTime float64) Option {
	return func(c configurable) {
		c.base().SetDrag(true, dragTime)
	}
}

// WithSmoothFrames averages pointer movement over frames frames.
func WithSmoothFrames(frames int) Option {
	return func(c configurable) {
		c.base().SetSmoothFrames(frames)
	}
}

// WithInvertPitch flips vertical pointer rotation.
func WithInvertPitch() Option {
	return func(c configurable) {
		c.base().SetInvertPitch(true)
	}
}

// WithYAxisMovement toggles up/down keyboard movement.
func WithYAxisMovement(enable bool) Option {
	return func(c configurable) {
		c.base().SetEnableYAxisMovement(enable)
	}
}

// WithPositionMovement toggles keyboard movement altogether.
func WithPositionMovement(enable bool) Option {
	return func(c configurable) {
		c.base().SetEnablePositionMovement(enable)
	}
}

// WithBoundary confines movement to the box [lo, hi].
func WithBoundary(lo, hi math3d.Vec3) Option {
	return func(c configurable) {
		c.base().SetClipToBoundary(true, lo, hi)
	}
}

// WithCursorReset recenters the pointer in bounds through w after every
// mouse sample.
func WithCursorReset(w CursorWarper, bounds image.Rectangle) Option {
	return func(c configurable) {
		r := c.base()
		r.SetCursorWarper(w, bounds)
		r.SetResetCursorAfterMove(true)
	}
}

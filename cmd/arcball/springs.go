package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/arcball/pkg/config"
)

// fovZoom eases the field of view toward a target set by the zoom keys.
type fovZoom struct {
	spring harmonica.Spring

	fov, vel, target float64 // degrees
	home             float64
	step, min, max   float64
}

func newFOVZoom(cfg config.ZoomConfig, fps int, fovDeg float64) *fovZoom {
	return &fovZoom{
		spring: harmonica.NewSpring(harmonica.FPS(fps), cfg.Frequency, cfg.Damping),
		fov:    fovDeg,
		target: fovDeg,
		home:   fovDeg,
		step:   cfg.StepDeg,
		min:    cfg.MinDeg,
		max:    cfg.MaxDeg,
	}
}

// In narrows the view by one step.
func (z *fovZoom) In() { z.target = math.Max(z.min, z.target-z.step) }

// Out widens the view by one step.
func (z *fovZoom) Out() { z.target = math.Min(z.max, z.target+z.step) }

// Reset eases back to the starting field of view.
func (z *fovZoom) Reset() { z.target = z.home }

// Update advances the spring one frame and reports whether the field of
// view moved noticeably.
func (z *fovZoom) Update() bool {
	prev := z.fov
	z.fov, z.vel = z.spring.Update(z.fov, z.vel, z.target)
	if math.Abs(z.fov-z.target) < 1e-4 && math.Abs(z.vel) < 1e-4 {
		z.fov, z.vel = z.target, 0
	}
	return z.fov != prev
}

// Radians returns the current field of view.
func (z *fovZoom) Radians() float64 { return z.fov * math.Pi / 180 }

// idleSpin turns the model at a steady rate while the user leaves it alone,
// ramping up and down through a spring.
type idleSpin struct {
	spring harmonica.Spring
	speed  float64 // radians per second
	vel    float64
	accel  float64
}

func newIdleSpin(cfg config.IdleSpinConfig, fps int) *idleSpin {
	return &idleSpin{
		spring: harmonica.NewSpring(harmonica.FPS(fps), cfg.Frequency, cfg.Damping),
		speed:  cfg.Speed,
	}
}

// Update advances one frame and returns the spin rate. idle says whether
// the user is leaving the model alone.
func (s *idleSpin) Update(idle bool) float64 {
	target := 0.0
	if idle {
		target = s.speed
	}
	s.vel, s.accel = s.spring.Update(s.vel, s.accel, target)
	if target == 0 && math.Abs(s.vel) < 1e-6 {
		s.vel, s.accel = 0, 0
	}
	return s.vel
}

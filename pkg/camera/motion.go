package camera

import (
	"github.com/taigrr/arcball/pkg/math3d"
)

// dragEpsilon absorbs float error when the drag timer is counted down in
// steps that evenly divide the drag time.
const dragEpsilon = 1e-9

// MotionIntegrator turns sampled input into per-frame velocities.
type MotionIntegrator struct {
	// KeyboardDirection is the unnormalized movement direction from the
	// held keys, in camera space.
	KeyboardDirection math3d.Vec3
	// MouseDelta is the smoothed pointer movement in pixels.
	MouseDelta math3d.Vec2
	// RotVelocity is MouseDelta scaled to radians per frame.
	RotVelocity math3d.Vec2
	// Velocity is the camera-space linear velocity in units per second.
	Velocity math3d.Vec3

	velocityDrag math3d.Vec3
	dragTimer    float64

	DragTime       float64 // seconds for a released key to coast to rest
	SmoothFrames   float64 // frames the mouse delta is averaged over
	RotationScaler float64 // radians per pixel
	MoveScaler     float64 // units per second

	MovementDrag bool
	EnableYAxis  bool
	ClipToBounds bool
	MinBound     math3d.Vec3
	MaxBound     math3d.Vec3
}

// NewMotionIntegrator returns an integrator with the stock tuning.
func NewMotionIntegrator() MotionIntegrator {
	return MotionIntegrator{
		DragTime:       0.25,
		SmoothFrames:   2,
		RotationScaler: 0.01,
		MoveScaler:     5,
		EnableYAxis:    true,
		MinBound:       math3d.V3(-1, -1, -1),
		MaxBound:       math3d.V3(1, 1, 1),
	}
}

// ReadKeyboard rebuilds KeyboardDirection from the held actions.
func (m *MotionIntegrator) ReadKeyboard(k *Keyboard) {
	var d math3d.Vec3
	if k.IsDown(ActionMoveForward) {
		d.Z++
	}
	if k.IsDown(ActionMoveBackward) {
		d.Z--
	}
	if m.EnableYAxis {
		if k.IsDown(ActionMoveUp) {
			d.Y++
		}
		if k.IsDown(ActionMoveDown) {
			d.Y--
		}
	}
	if k.IsDown(ActionStrafeRight) {
		d.X++
	}
	if k.IsDown(ActionStrafeLeft) {
		d.X--
	}
	m.KeyboardDirection = d
}

// SmoothMouse blends raw into MouseDelta as an exponential average over
// SmoothFrames frames.
func (m *MotionIntegrator) SmoothMouse(raw math3d.Vec2) {
	n := m.SmoothFrames
	if n <= 0 {
		n = 1
	}
	p := 1 / n
	m.MouseDelta = m.MouseDelta.Scale(1 - p).Add(raw.Scale(p))
}

// Update derives RotVelocity and Velocity for a frame of elapsed seconds.
// While coasting, each frame removes velocityDrag x elapsed, capped at the
// drag time left. The frame that runs the drag timer out ends at rest
// instead of overshooting into reverse, so a step that does not divide
// DragTime evenly never moves backwards.
func (m *MotionIntegrator) Update(elapsed float64) {
	m.RotVelocity = m.MouseDelta.Scale(m.RotationScaler)

	accel := m.KeyboardDirection.Normalize().Scale(m.MoveScaler)

	if !m.MovementDrag {
		m.Velocity = accel
		return
	}

	switch {
	case accel.LenSq() > 0:
		m.Velocity = accel
		if m.DragTime > 0 {
			m.dragTimer = m.DragTime
			m.velocityDrag = accel.Scale(1 / m.DragTime)
		} else {
			m.dragTimer = 0
		}
	case m.dragTimer > 0:
		m.Velocity = m.Velocity.Sub(m.velocityDrag.Scale(min(elapsed, m.dragTimer)))
		m.dragTimer -= elapsed
		if m.dragTimer <= dragEpsilon {
			m.dragTimer = 0
			m.Velocity = math3d.Vec3{}
		}
	default:
		m.Velocity = math3d.Vec3{}
	}
}

// PositionDelta returns the distance covered this frame.
func (m *MotionIntegrator) PositionDelta(elapsed float64) math3d.Vec3 {
	return m.Velocity.Scale(elapsed)
}

// Constrain clamps p to the movement bounds when clipping is enabled.
func (m *MotionIntegrator) Constrain(p math3d.Vec3) math3d.Vec3 {
	if !m.ClipToBounds {
		return p
	}
	return p.Clamp(m.MinBound, m.MaxBound)
}

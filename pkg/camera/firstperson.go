package camera

import (
	"math"

	"github.com/taigrr/arcball/pkg/math3d"
)

// FirstPersonCamera walks through a scene: the keyboard moves the eye and
// dragging with a rotate button turns the head.
type FirstPersonCamera struct {
	rig

	world               math3d.Mat4
	rotateButtons       Button
	rotateWithoutButton bool
}

// NewFirstPersonCamera creates a camera at the origin looking down +Z.
func NewFirstPersonCamera(opts ...Option) *FirstPersonCamera {
	c := &FirstPersonCamera{
		rig:           newRig(),
		rotateButtons: ButtonLeft | ButtonRight,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.world = c.view.Inverse()
	return c
}

// HandleEvent records ev for the next Update.
func (c *FirstPersonCamera) HandleEvent(ev Event) {
	c.input.HandleEvent(ev)
}

// SetRotateButtons chooses which held buttons turn the camera.
// withoutButton turns it on any pointer movement.
func (c *FirstPersonCamera) SetRotateButtons(left, middle, right, withoutButton bool) {
	c.rotateButtons = 0
	if left {
		c.rotateButtons |= ButtonLeft
	}
	if middle {
		c.rotateButtons |= ButtonMiddle
	}
	if right {
		c.rotateButtons |= ButtonRight
	}
	c.rotateWithoutButton = withoutButton
}

// Reset returns to the home pose.
func (c *FirstPersonCamera) Reset() {
	c.resetPose()
	c.world = c.view.Inverse()
}

// Update advances the camera by elapsed seconds.
func (c *FirstPersonCamera) Update(elapsed float64) {
	if c.input.Keys.IsDown(ActionReset) {
		c.Reset()
	}

	rotating := c.input.Buttons()&c.rotateButtons != 0 || c.rotateWithoutButton
	c.readInput(c.positionMovement, rotating)
	c.motion.Update(elapsed)
	delta := c.motion.PositionDelta(elapsed)

	if rotating {
		yaw, pitch := c.motion.RotVelocity.X, c.motion.RotVelocity.Y
		if c.invertPitch {
			pitch = -pitch
		}
		c.yaw += yaw
		c.pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.pitch+pitch))
	}

	rot := math3d.RotateYawPitchRoll(c.yaw, c.pitch, 0)
	up := rot.MulVec3Dir(math3d.Up())
	ahead := rot.MulVec3Dir(math3d.Forward())

	if !c.motion.EnableYAxis {
		rot = math3d.RotateYawPitchRoll(c.yaw, 0, 0)
	}

	c.pose.Eye = c.motion.Constrain(c.pose.Eye.Add(rot.MulVec3Dir(delta)))
	c.pose.LookAt = c.pose.Eye.Add(ahead)

	c.view = math3d.LookAtLH(c.pose.Eye, c.pose.LookAt, up)
	c.world = c.view.Inverse()
}

// WorldMatrix is the camera's own transform, the inverse of the view.
func (c *FirstPersonCamera) WorldMatrix() math3d.Mat4 { return c.world }

func (c *FirstPersonCamera) WorldRight() math3d.Vec3 { return c.world.Basis(0) }
func (c *FirstPersonCamera) WorldUp() math3d.Vec3    { return c.world.Basis(1) }
func (c *FirstPersonCamera) WorldAhead() math3d.Vec3 { return c.world.Basis(2) }

// Yaw and Pitch return the head angles in radians.
func (c *FirstPersonCamera) Yaw() float64   { return c.yaw }
func (c *FirstPersonCamera) Pitch() float64 { return c.pitch }

// Package camera turns pointer and keyboard events into view, projection and
// world matrices for two navigation styles: a first-person camera and an
// orbiting model viewer driven by arcballs.
//
// Cameras are not safe for concurrent use. Feed events with HandleEvent and
// advance time with Update from the same goroutine.
//
// All matrices are left-handed: +Z points into the screen and projection
// depth runs from 0 to 1.
package camera

import (
	"image"
	"log/slog"
	"math"

	"github.com/taigrr/arcball/pkg/math3d"
)

// Camera is what a frame loop needs from either navigation style.
type Camera interface {
	HandleEvent(ev Event)
	Update(elapsed float64)
	Reset()
	ViewMatrix() math3d.Mat4
	ProjMatrix() math3d.Mat4
	WorldMatrix() math3d.Mat4
	EyePt() math3d.Vec3
	LookAtPt() math3d.Vec3
}

var (
	_ Camera = (*FirstPersonCamera)(nil)
	_ Camera = (*ModelViewerCamera)(nil)
)

// Pose is where a camera stands and what it looks at.
type Pose struct {
	Eye    math3d.Vec3
	LookAt math3d.Vec3
}

// rig is the state both cameras share: input, motion, the live and home
// poses, and the lens.
type rig struct {
	input  Input
	motion MotionIntegrator

	pose Pose
	home Pose

	fov, aspect, near, far float64
	view, proj             math3d.Mat4
	yaw, pitch             float64

	positionMovement bool
	invertPitch      bool

	log *slog.Logger
}

func newRig() rig {
	r := rig{
		input:            NewInput(),
		motion:           NewMotionIntegrator(),
		positionMovement: true,
		log:              slog.New(slog.DiscardHandler),
	}
	r.SetProjParams(math.Pi/4, 1, 1, 1000)
	r.SetViewParams(math3d.Zero3(), math3d.V3(0, 0, 1))
	return r
}

// SetViewParams places the camera and makes the pose the one Reset returns
// to.
func (r *rig) SetViewParams(eye, lookAt math3d.Vec3) {
	r.home = Pose{Eye: eye, LookAt: lookAt}
	r.applyPose(r.home)
}

func (r *rig) applyPose(p Pose) {
	r.pose = p
	r.view = math3d.LookAtLH(p.Eye, p.LookAt, math3d.Up())

	z := r.view.Inverse().Basis(2)
	r.yaw = math.Atan2(z.X, z.Z)
	r.pitch = -math.Atan2(z.Y, math.Hypot(z.Z, z.X))
}

func (r *rig) resetPose() {
	r.applyPose(r.home)
	r.log.Debug("camera reset", "eye", r.home.Eye, "lookAt", r.home.LookAt)
}

// SetProjParams sets the vertical field of view in radians, the aspect
// ratio and the clip planes.
func (r *rig) SetProjParams(fov, aspect, near, far float64) {
	r.fov, r.aspect, r.near, r.far = fov, aspect, near, far
	r.proj = math3d.PerspectiveFovLH(fov, aspect, near, far)
}

// readInput samples the keyboard and the pointer as requested. Skipping
// the keyboard leaves no movement direction.
func (r *rig) readInput(keyboard, mouse bool) {
	r.motion.KeyboardDirection = math3d.Vec3{}
	if keyboard {
		r.motion.ReadKeyboard(&r.input.Keys)
	}
	if mouse {
		r.motion.SmoothMouse(r.input.SampleMouse())
	}
}

func (r *rig) ViewMatrix() math3d.Mat4 { return r.view }
func (r *rig) ProjMatrix() math3d.Mat4 { return r.proj }
func (r *rig) EyePt() math3d.Vec3      { return r.pose.Eye }
func (r *rig) LookAtPt() math3d.Vec3   { return r.pose.LookAt }
func (r *rig) NearClip() float64       { return r.near }
func (r *rig) FarClip() float64        { return r.far }
func (r *rig) FOV() float64            { return r.fov }
func (r *rig) Aspect() float64         { return r.aspect }

// Home returns the pose Reset restores.
func (r *rig) Home() Pose { return r.home }

// IsBeingDragged reports whether any pointer button is held.
func (r *rig) IsBeingDragged() bool { return r.input.Buttons() != 0 }

func (r *rig) IsMouseLeftButtonDown() bool   { return r.input.Buttons()&ButtonLeft != 0 }
func (r *rig) IsMouseMiddleButtonDown() bool { return r.input.Buttons()&ButtonMiddle != 0 }
func (r *rig) IsMouseRightButtonDown() bool  { return r.input.Buttons()&ButtonRight != 0 }

// SetDragRect limits where button presses are accepted.
func (r *rig) SetDragRect(rect image.Rectangle) {
	r.input.SetDragRect(rect)
}

// SetKeymap replaces the key bindings. Keys already held stay held.
func (r *rig) SetKeymap(k Keymap) {
	if k == nil {
		k = DefaultKeymap()
	}
	r.input.Keys.keymap = k
}

func (r *rig) SetInvertPitch(invert bool) { r.invertPitch = invert }

// SetEnablePositionMovement toggles keyboard movement.
func (r *rig) SetEnablePositionMovement(enable bool) { r.positionMovement = enable }

func (r *rig) SetEnableYAxisMovement(enable bool) { r.motion.EnableYAxis = enable }

// SetDrag toggles velocity damping; a released key coasts to rest over
// dragTime seconds.
func (r *rig) SetDrag(movementDrag bool, dragTime float64) {
	r.motion.MovementDrag = movementDrag
	r.motion.DragTime = dragTime
}

// SetClipToBoundary confines camera movement to the box [lo, hi].
func (r *rig) SetClipToBoundary(enable bool, lo, hi math3d.Vec3) {
	r.motion.ClipToBounds = enable
	r.motion.MinBound = lo
	r.motion.MaxBound = hi
}

// SetScalers sets radians per pixel of pointer movement and units per
// second of keyboard movement.
func (r *rig) SetScalers(rotation, move float64) {
	r.motion.RotationScaler = rotation
	r.motion.MoveScaler = move
}

// SetSmoothFrames sets how many frames pointer movement is averaged over.
// Values below one are ignored.
func (r *rig) SetSmoothFrames(frames int) {
	if frames <= 0 {
		r.log.Debug("ignoring mouse smoothing frames", "frames", frames)
		return
	}
	r.motion.SmoothFrames = float64(frames)
}

// SetResetCursorAfterMove recenters the pointer after each sample through
// the installed CursorWarper.
func (r *rig) SetResetCursorAfterMove(enable bool) {
	r.input.SetResetCursorAfterMove(enable)
}

// SetCursorWarper installs the host hook used to recenter the pointer in
// bounds.
func (r *rig) SetCursorWarper(w CursorWarper, bounds image.Rectangle) {
	r.input.SetCursorWarper(w, bounds)
}

func (r *rig) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r.log = l
}

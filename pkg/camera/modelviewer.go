package camera

import (
	"image"
	"math"

	"github.com/taigrr/arcball/pkg/math3d"
)

// ModelViewerCamera orbits a model. One arcball spins the model in place,
// a second swings the camera around it, and the wheel changes the orbit
// radius.
type ModelViewerCamera struct {
	rig

	worldBall ArcBall
	viewBall  ArcBall

	modelCenter   math3d.Vec3
	modelRot      math3d.Mat4
	modelLastRot  math3d.Mat4
	cameraRotLast math3d.Mat4
	world         math3d.Mat4

	rotateModelButtons  Button
	zoomButtons         Button
	rotateCameraButtons Button

	attachCameraToModel bool
	dragged             bool

	radius        float64
	defaultRadius float64
	minRadius     float64
	maxRadius     float64
}

// NewModelViewerCamera creates an orbit camera. Without options it sits at
// the origin looking down +Z with a default radius of 5.
func NewModelViewerCamera(opts ...Option) *ModelViewerCamera {
	c := &ModelViewerCamera{
		rig:                 newRig(),
		worldBall:           NewArcBall(),
		viewBall:            NewArcBall(),
		rotateModelButtons:  ButtonLeft,
		zoomButtons:         ButtonWheel,
		rotateCameraButtons: ButtonRight,
		minRadius:           1,
		maxRadius:           math.Inf(1),
	}
	c.positionMovement = false
	c.resetRotations()
	c.SetViewParams(c.home.Eye, c.home.LookAt)
	c.radius, c.defaultRadius = 5, 5

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ModelViewerCamera) resetRotations() {
	c.world = math3d.Identity()
	c.modelRot = math3d.Identity()
	c.modelLastRot = math3d.Identity()
	c.cameraRotLast = math3d.Identity()
}

// SetViewParams places the camera, points the camera arcball along the
// view and makes the eye distance the default radius. The min and max
// radius set by SetRadius are kept, not reset to 1 and +Inf, and the
// radius is not clamped until the next Update.
func (c *ModelViewerCamera) SetViewParams(eye, lookAt math3d.Vec3) {
	c.rig.SetViewParams(eye, lookAt)
	c.viewBall.SetQuatNow(homeQuat(c.home))
	c.radius = eye.Distance(lookAt)
	c.defaultRadius = c.radius
	c.dragged = true
}

func homeQuat(p Pose) math3d.Quat {
	return math3d.QuatFromMat4(math3d.LookAtLH(p.Eye, p.LookAt, math3d.Up()))
}

// SetDragRect limits drags to r and sizes both arcballs to it.
func (c *ModelViewerCamera) SetDragRect(r image.Rectangle) {
	c.rig.SetDragRect(r)
	if r.Empty() {
		return
	}
	c.worldBall.SetOffset(r.Min.X, r.Min.Y)
	c.viewBall.SetOffset(r.Min.X, r.Min.Y)
	c.SetWindow(r.Dx(), r.Dy())
}

// SetWindow sizes both arcballs with the default ball radius.
func (c *ModelViewerCamera) SetWindow(width, height int) {
	c.SetWindowRadius(width, height, DefaultBallRadius)
}

// SetWindowRadius sizes both arcballs.
func (c *ModelViewerCamera) SetWindowRadius(width, height int, radius float64) {
	c.worldBall.SetWindowRadius(width, height, radius)
	c.viewBall.SetWindowRadius(width, height, radius)
}

// SetRadius sets the default orbit radius and its limits, and jumps to the
// default.
func (c *ModelViewerCamera) SetRadius(defaultRadius, minRadius, maxRadius float64) {
	c.defaultRadius = defaultRadius
	c.radius = defaultRadius
	c.minRadius = minRadius
	c.maxRadius = maxRadius
	c.dragged = true
}

// SetButtonMasks chooses which buttons rotate the model, zoom and rotate
// the camera.
func (c *ModelViewerCamera) SetButtonMasks(rotateModel, zoom, rotateCamera Button) {
	c.rotateModelButtons = rotateModel
	c.zoomButtons = zoom
	c.rotateCameraButtons = rotateCamera
}

// SetAttachCameraToModel makes camera drags carry the model along unless
// the control key is held.
func (c *ModelViewerCamera) SetAttachCameraToModel(enable bool) {
	c.attachCameraToModel = enable
}

// SetModelCenter sets the point the model rotates about.
func (c *ModelViewerCamera) SetModelCenter(p math3d.Vec3) {
	c.modelCenter = p
}

// SetViewQuat sets the camera orientation.
func (c *ModelViewerCamera) SetViewQuat(q math3d.Quat) {
	c.viewBall.SetQuatNow(q)
	c.dragged = true
}

// SetWorldQuat sets the model arcball orientation.
func (c *ModelViewerCamera) SetWorldQuat(q math3d.Quat) {
	c.worldBall.SetQuatNow(q)
	c.dragged = true
}

// SetWorldMatrix replaces the world transform. Its rotation becomes the
// model rotation that later drags build on.
func (c *ModelViewerCamera) SetWorldMatrix(m math3d.Mat4) {
	c.world = m
	c.modelRot = m
	c.dragged = true
}

// HandleEvent routes pointer events to the arcballs and records ev for the
// next Update.
func (c *ModelViewerCamera) HandleEvent(ev Event) {
	c.input.HandleEvent(ev)

	switch ev.Kind {
	case PointerDown, PointerDoubleClick:
		if ev.Button&c.rotateModelButtons != 0 {
			c.worldBall.Begin(ev.X, ev.Y)
		}
		if ev.Button&c.rotateCameraButtons != 0 {
			c.viewBall.Begin(ev.X, ev.Y)
		}
	case PointerUp:
		if ev.Button&c.rotateModelButtons != 0 {
			c.worldBall.End()
		}
		if ev.Button&c.rotateCameraButtons != 0 {
			c.viewBall.End()
		}
	case PointerMove:
		c.worldBall.Move(ev.X, ev.Y)
		c.viewBall.Move(ev.X, ev.Y)
	case CaptureLost:
		if c.rotateModelButtons&buttonsPointer != 0 {
			c.worldBall.End()
		}
		if c.rotateCameraButtons&buttonsPointer != 0 {
			c.viewBall.End()
		}
	case Wheel:
	default:
		return
	}
	c.dragged = true
}

// Reset returns to the home pose with no model rotation.
func (c *ModelViewerCamera) Reset() {
	c.resetPose()
	c.resetRotations()
	c.radius = c.defaultRadius
	c.worldBall.Reset()
	c.viewBall.Reset()
	c.viewBall.SetQuatNow(homeQuat(c.home))
	c.dragged = true
}

// Update advances the camera by elapsed seconds. Frames with no pointer
// activity and no held keys leave every matrix untouched.
func (c *ModelViewerCamera) Update(elapsed float64) {
	if c.input.Keys.IsDown(ActionReset) {
		c.Reset()
	}
	if !c.dragged && c.input.Keys.Down() == 0 {
		return
	}
	c.dragged = false

	c.readInput(c.positionMovement, c.input.Buttons() != 0)
	c.motion.Update(elapsed)
	delta := c.motion.PositionDelta(elapsed)

	if w := c.input.Wheel(); w != 0 && c.zoomButtons == ButtonWheel {
		c.radius -= float64(w) * c.radius * 0.1 / WheelDelta
	}
	c.radius = math.Max(c.minRadius, math.Min(c.maxRadius, c.radius))
	c.input.ClearWheel()

	cameraRot := c.viewBall.RotationMatrix().Inverse()
	up := cameraRot.MulVec3Dir(math3d.Up())
	ahead := cameraRot.MulVec3Dir(math3d.Forward())

	c.pose.LookAt = c.motion.Constrain(c.pose.LookAt.Add(cameraRot.MulVec3Dir(delta)))
	c.pose.Eye = c.pose.LookAt.Sub(ahead.Scale(c.radius))
	c.view = math3d.LookAtLH(c.pose.Eye, c.pose.LookAt, up)

	invView := c.view.Inverse()
	invView.SetTranslation(math3d.Zero3())

	// Undo last frame's arcball rotation and apply this frame's, both
	// expressed in view space.
	worldRot := c.worldBall.RotationMatrix()
	c.modelRot = c.modelRot.
		Then(c.view).
		Then(c.modelLastRot.Inverse()).
		Then(worldRot).
		Then(invView)

	if c.viewBall.IsDragging() && c.attachCameraToModel && !c.input.Keys.IsDown(ActionControlDown) {
		c.modelRot = c.modelRot.Then(c.cameraRotLast.Inverse().Then(cameraRot))
	}

	c.modelLastRot = worldRot
	c.cameraRotLast = cameraRot

	// Repeated products drift; pull the basis back to orthonormal.
	x := c.modelRot.Basis(0).Normalize()
	y := c.modelRot.Basis(2).Cross(x).Normalize()
	z := x.Cross(y)
	c.modelRot.SetBasis(0, x)
	c.modelRot.SetBasis(1, y)
	c.modelRot.SetBasis(2, z)
	c.modelRot.SetTranslation(c.pose.LookAt)

	c.world = math3d.Translate(c.modelCenter.Negate()).Then(c.modelRot)
}

// WorldMatrix places the model.
func (c *ModelViewerCamera) WorldMatrix() math3d.Mat4 { return c.world }

// Radius returns the current orbit radius.
func (c *ModelViewerCamera) Radius() float64 { return c.radius }

// ModelCenter returns the point the model rotates about.
func (c *ModelViewerCamera) ModelCenter() math3d.Vec3 { return c.modelCenter }

// WorldBall and ViewBall expose the model and camera arcballs.
func (c *ModelViewerCamera) WorldBall() *ArcBall { return &c.worldBall }
func (c *ModelViewerCamera) ViewBall() *ArcBall  { return &c.viewBall }

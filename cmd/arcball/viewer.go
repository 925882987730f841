package main

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/arcball/pkg/camera"
	"github.com/taigrr/arcball/pkg/config"
	"github.com/taigrr/arcball/pkg/input/uvinput"
	"github.com/taigrr/arcball/pkg/math3d"
	"github.com/taigrr/arcball/pkg/models"
	"github.com/taigrr/arcball/pkg/render"
	"github.com/taigrr/arcball/pkg/trace"
)

// viewCamera is what the viewer needs from either camera.
type viewCamera interface {
	camera.Camera
	SetProjParams(fov, aspect, near, far float64)
	SetDragRect(r image.Rectangle)
	NearClip() float64
	FarClip() float64
	IsBeingDragged() bool
}

// newCamera builds the camera for mode ("orbit" or "fps") from cfg.
func newCamera(cfg *config.Config, mode string, logger *slog.Logger) (viewCamera, error) {
	opts := append(cfg.Options(), camera.WithLogger(logger))
	switch mode {
	case "orbit":
		c := camera.NewModelViewerCamera(opts...)
		cfg.ApplyOrbit(c)
		return c, nil
	case "fps":
		c := camera.NewFirstPersonCamera(opts...)
		cfg.ApplyFirstPerson(c)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (use orbit or fps)", mode)
	}
}

// viewer owns everything the frame loop touches. All of it runs on the
// frame goroutine.
type viewer struct {
	cam   viewCamera
	input *uvinput.Translator
	zoom  *fovZoom
	spin  *idleSpin
	hud   *HUD
	trace *trace.Recorder
	log   *slog.Logger

	fb    *render.Framebuffer
	wire  *render.Wireframe
	mesh  *models.Mesh
	edges [][2]int
	bg    render.Color
	fg    render.Color

	width, height int // terminal cells
	elapsed       float64
}

func newViewer(cfg *config.Config, cam viewCamera, mesh *models.Mesh, rec *trace.Recorder, logger *slog.Logger) *viewer {
	fb := render.NewFramebuffer(1, 1)
	v := &viewer{
		cam:   cam,
		input: uvinput.New(),
		zoom:  newFOVZoom(cfg.Viewer.Zoom, cfg.Viewer.FPS, cfg.Camera.FOVDeg),
		spin:  newIdleSpin(cfg.Viewer.IdleSpin, cfg.Viewer.FPS),
		hud:   NewHUD(mesh.Name, mesh.TriangleCount()),
		trace: rec,
		log:   logger,
		fb:    fb,
		wire:  render.NewWireframe(fb),
		mesh:  mesh,
		edges: mesh.Edges(),
		bg:    render.RGB(config.RGB(cfg.Viewer.Background)),
		fg:    render.RGB(config.RGB(cfg.Viewer.Foreground)),
	}
	if mv, ok := cam.(*camera.ModelViewerCamera); ok {
		mv.SetModelCenter(mesh.Center())
	}
	return v
}

// Resize matches the framebuffer, drag area and lens to a terminal of
// width x height cells.
func (v *viewer) Resize(width, height int) {
	v.width, v.height = width, height
	v.fb.Resize(width*v.input.ScaleX, height*v.input.ScaleY)
	v.cam.SetDragRect(image.Rect(0, 0, v.fb.Width, v.fb.Height))
	v.applyLens()
	v.log.Debug("resize", "cells", fmt.Sprintf("%dx%d", width, height), "pixels", fmt.Sprintf("%dx%d", v.fb.Width, v.fb.Height))
}

func (v *viewer) applyLens() {
	aspect := 1.0
	if v.fb.Height > 0 {
		aspect = float64(v.fb.Width) / float64(v.fb.Height)
	}
	v.cam.SetProjParams(v.zoom.Radians(), aspect, v.cam.NearClip(), v.cam.FarClip())
}

// Handle processes one terminal event and reports whether the user asked
// to quit.
func (v *viewer) Handle(ev uv.Event, now time.Time) (quit bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.Resize(ev.Width, ev.Height)
		return false
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("esc", "escape", "ctrl+c"):
			return true
		case ev.MatchString("+", "="):
			v.zoom.In()
		case ev.MatchString("-", "_"):
			v.zoom.Out()
		case ev.MatchString("?", "shift+/"):
			v.hud.Toggle()
		case ev.MatchString("home"):
			v.zoom.Reset()
		}
	}

	for _, cev := range v.input.Translate(ev, now) {
		v.cam.HandleEvent(cev)
	}
	return false
}

// Step advances the camera by dt seconds.
func (v *viewer) Step(dt float64, now time.Time) error {
	for _, cev := range v.input.Expire(now) {
		v.cam.HandleEvent(cev)
	}

	if v.zoom.Update() {
		v.applyLens()
	}

	if mv, ok := v.cam.(*camera.ModelViewerCamera); ok {
		if rate := v.spin.Update(!mv.IsBeingDragged()); rate != 0 {
			turn := math3d.QuatFromAxisAngle(math3d.Up(), rate*dt)
			mv.SetWorldQuat(turn.Mul(mv.WorldBall().QuatNow()))
		}
	}

	v.cam.Update(dt)
	v.elapsed += dt
	return v.trace.Record(v.elapsed, v.cam)
}

// Draw renders the scene into the framebuffer and onto scr.
func (v *viewer) Draw(scr uv.Screen) {
	v.fb.Clear(v.bg)

	world := math3d.Identity()
	if _, ok := v.cam.(*camera.ModelViewerCamera); ok {
		world = v.cam.WorldMatrix()
	}

	// Scene reference first, then the model on top.
	v.wire.SetTransform(math3d.Identity(), v.cam.ViewMatrix(), v.cam.ProjMatrix())
	v.wire.DrawGrid(10, 1, -1, render.ColorGray)
	v.wire.DrawAxes(1)

	v.wire.SetTransform(world, v.cam.ViewMatrix(), v.cam.ProjMatrix())
	bounds := render.NewAABB(v.mesh.BoundsMin, v.mesh.BoundsMax)
	v.wire.DrawEdges(v.mesh.Positions, v.edges, bounds, v.fg)

	v.fb.Draw(scr, uv.Rect(0, 0, v.width, v.height))
}

// Overlay draws the HUD on top of the flushed frame.
func (v *viewer) Overlay() {
	v.hud.UpdateFPS()
	v.hud.Render(v.width, v.height, v.cam, v.zoom.fov)
}

package main

import (
	"fmt"
	"time"

	"github.com/taigrr/arcball/pkg/camera"
)

// HUD renders an overlay with model info and the camera state.
type HUD struct {
	filename  string
	triangles int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	visible   bool
}

func NewHUD(filename string, triangles int) *HUD {
	return &HUD{
		filename:  filename,
		triangles: triangles,
		fpsTime:   time.Now(),
	}
}

func (h *HUD) Toggle() { h.visible = !h.visible }

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD directly to the terminal, after the frame.
func (h *HUD) Render(width, height int, cam camera.Camera, fovDeg float64) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !h.visible {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	tris := fmt.Sprintf("%d tris", h.triangles)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, max(width-len(tris)-1, 1)), bgBlack, fgCyan, bold, tris, reset)

	eye := cam.EyePt()
	status := fmt.Sprintf("eye %.2f %.2f %.2f  fov %.0f°", eye.X, eye.Y, eye.Z, fovDeg)
	switch c := cam.(type) {
	case *camera.ModelViewerCamera:
		status = fmt.Sprintf("orbit  r %.2f  %s", c.Radius(), status)
	case *camera.FirstPersonCamera:
		status = fmt.Sprintf("walk  yaw %.2f pitch %.2f  %s", c.Yaw(), c.Pitch(), status)
	}
	fmt.Printf("%s%s%s %s %s", moveTo(height, 1), bgBlack, fgWhite, status, reset)

	hint := fmt.Sprintf("%s%s%s Home: reset %s", bgBlack, dim, fgYellow, reset)
	fmt.Print(moveTo(height, max(width-13, 1)) + hint)
}

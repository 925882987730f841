package config

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/arcball/pkg/camera"
	"github.com/taigrr/arcball/pkg/math3d"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcball.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Camera.Eye != (Vec3{0, 0, -5}) {
		t.Errorf("eye = %v", cfg.Camera.Eye)
	}
	if cfg.Camera.SmoothFrames != 2 || cfg.Camera.MoveScaler != 5 || cfg.Camera.RotationScaler != 0.01 {
		t.Errorf("camera tuning = %+v", cfg.Camera)
	}
	if cfg.Viewer.FPS != 30 {
		t.Errorf("fps = %d", cfg.Viewer.FPS)
	}
	if got := cfg.FirstPerson.RotateButtons; len(got) != 2 || got[0] != "left" || got[1] != "right" {
		t.Errorf("rotate buttons = %v", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
camera:
  eye: [1, 2, 3]
  invert_pitch: true
orbit:
  zoom: [middle, wheel]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Camera.Eye != (Vec3{1, 2, 3}) || !cfg.Camera.InvertPitch {
		t.Errorf("overlay not applied: %+v", cfg.Camera)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.FOVDeg != 45 || cfg.Orbit.Radius.Default != 5 {
		t.Errorf("defaults lost: fov %v radius %v", cfg.Camera.FOVDeg, cfg.Orbit.Radius.Default)
	}
	if got := cfg.Orbit.Zoom; len(got) != 2 || got[0] != "middle" {
		t.Errorf("zoom = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad fov", "camera:\n  fov_deg: 200\n", "fov_deg"},
		{"far before near", "camera:\n  near: 10\n  far: 5\n", "camera.far"},
		{"bad button", "orbit:\n  zoom: [thumb]\n", `unknown button "thumb"`},
		{"bad color", "viewer:\n  background: teal\n", "viewer.background"},
		{"short vector", "camera:\n  eye: [1, 2]\n", "parsing config file"},
		{"coincident pose", "camera:\n  eye: [0, 0, 0]\n", "coincide"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestParseButtons(t *testing.T) {
	tests := []struct {
		names []string
		want  camera.Button
	}{
		{nil, 0},
		{[]string{"left"}, camera.ButtonLeft},
		{[]string{"Left", " right "}, camera.ButtonLeft | camera.ButtonRight},
		{[]string{"middle", "wheel"}, camera.ButtonMiddle | camera.ButtonWheel},
	}

	for _, tc := range tests {
		got, err := ParseButtons(tc.names)
		if err != nil || got != tc.want {
			t.Errorf("ParseButtons(%v) = %b, %v, want %b", tc.names, got, err, tc.want)
		}
	}
}

func TestOptionsConfigureCamera(t *testing.T) {
	path := writeConfig(t, `
camera:
  eye: [0, 1, -4]
  look_at: [0, 1, 0]
  fov_deg: 60
  boundary:
    enabled: true
    min: [-2, -2, -2]
    max: [2, 2, 2]
first_person:
  rotate_buttons: [middle]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c := camera.NewFirstPersonCamera(cfg.Options()...)
	cfg.ApplyFirstPerson(c)

	if c.EyePt() != math3d.V3(0, 1, -4) {
		t.Errorf("eye = %v", c.EyePt())
	}
	if math.Abs(c.FOV()-math.Pi/3) > 1e-12 || c.NearClip() != 0.1 {
		t.Errorf("fov, near = %v, %v", c.FOV(), c.NearClip())
	}

	// The boundary pulls the eye into the box on the next move.
	c.HandleEvent(camera.Event{Kind: camera.KeyDown, Key: camera.KeyW})
	c.Update(0.01)
	if z := c.EyePt().Z; z != -2 {
		t.Errorf("eye.Z = %v, want -2", z)
	}

	// Only the middle button rotates.
	c.HandleEvent(camera.Event{Kind: camera.PointerDown, Button: camera.ButtonLeft})
	c.HandleEvent(camera.Event{Kind: camera.PointerMove, X: 50})
	c.Update(0.01)
	if c.Yaw() != 0 {
		t.Errorf("left drag rotated: yaw %v", c.Yaw())
	}
}

func TestApplyOrbit(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mv := camera.NewModelViewerCamera(cfg.Options()...)
	cfg.ApplyOrbit(mv)
	mv.SetWindow(800, 600)

	if mv.Radius() != 5 {
		t.Errorf("radius = %v, want 5", mv.Radius())
	}

	// Unbounded zoom out.
	for range 20 {
		mv.HandleEvent(camera.Event{Kind: camera.Wheel, Wheel: -camera.WheelDelta})
	}
	mv.Update(0.01)
	if mv.Radius() <= 10 {
		t.Errorf("radius = %v, want unbounded growth", mv.Radius())
	}
}

func TestRGB(t *testing.T) {
	r, g, b := RGB("#1e1e28")
	if r != 30 || g != 30 || b != 40 {
		t.Errorf("RGB = %d,%d,%d, want 30,30,40", r, g, b)
	}
}

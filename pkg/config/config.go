// Package config loads camera and viewer settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/arcball/pkg/camera"
	"github.com/taigrr/arcball/pkg/math3d"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all settings.
type Config struct {
	Camera      CameraConfig      `yaml:"camera"`
	Orbit       OrbitConfig       `yaml:"orbit"`
	FirstPerson FirstPersonConfig `yaml:"first_person"`
	Viewer      ViewerConfig      `yaml:"viewer"`
}

// Vec3 is a YAML [x, y, z] triple.
type Vec3 [3]float64

func (v Vec3) vec() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

// CameraConfig holds settings shared by both cameras.
type CameraConfig struct {
	Eye            Vec3           `yaml:"eye"`
	LookAt         Vec3           `yaml:"look_at"`
	FOVDeg         float64        `yaml:"fov_deg"`
	Near           float64        `yaml:"near"`
	Far            float64        `yaml:"far"`
	RotationScaler float64        `yaml:"rotation_scaler"` // radians per pixel
	MoveScaler     float64        `yaml:"move_scaler"`     // units per second
	SmoothFrames   int            `yaml:"smooth_frames"`
	DragTime       float64        `yaml:"drag_time"` // seconds, 0 disables drag
	InvertPitch    bool           `yaml:"invert_pitch"`
	YAxisMovement  bool           `yaml:"y_axis_movement"`
	Boundary       BoundaryConfig `yaml:"boundary"`
}

// BoundaryConfig confines the eye to a box.
type BoundaryConfig struct {
	Enabled bool `yaml:"enabled"`
	Min     Vec3 `yaml:"min"`
	Max     Vec3 `yaml:"max"`
}

// OrbitConfig holds model viewer settings. Button lists name left, middle,
// right or wheel.
type OrbitConfig struct {
	Radius              RadiusConfig `yaml:"radius"`
	RotateModel         []string     `yaml:"rotate_model"`
	Zoom                []string     `yaml:"zoom"`
	RotateCamera        []string     `yaml:"rotate_camera"`
	AttachCameraToModel bool         `yaml:"attach_camera_to_model"`
	PositionMovement    bool         `yaml:"position_movement"`
}

// RadiusConfig bounds the orbit radius. A zero Max means unbounded.
type RadiusConfig struct {
	Default float64 `yaml:"default"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

// FirstPersonConfig holds first-person settings.
type FirstPersonConfig struct {
	RotateButtons       []string `yaml:"rotate_buttons"`
	RotateWithoutButton bool     `yaml:"rotate_without_button"`
	PositionMovement    bool     `yaml:"position_movement"`
}

// ViewerConfig holds terminal viewer settings.
type ViewerConfig struct {
	FPS        int            `yaml:"fps"`
	Background string         `yaml:"background"`
	Foreground string         `yaml:"foreground"`
	Zoom       ZoomConfig     `yaml:"zoom"`
	IdleSpin   IdleSpinConfig `yaml:"idle_spin"`
}

// ZoomConfig drives the field-of-view spring.
type ZoomConfig struct {
	StepDeg   float64 `yaml:"step_deg"`
	MinDeg    float64 `yaml:"min_deg"`
	MaxDeg    float64 `yaml:"max_deg"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// IdleSpinConfig spins the model while nothing is held.
type IdleSpinConfig struct {
	Speed     float64 `yaml:"speed"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	cam := c.Camera
	check(cam.FOVDeg > 0 && cam.FOVDeg < 180, "camera.fov_deg %v out of (0, 180)", cam.FOVDeg)
	check(cam.Near > 0, "camera.near %v must be positive", cam.Near)
	check(cam.Far > cam.Near, "camera.far %v must exceed near %v", cam.Far, cam.Near)
	check(cam.SmoothFrames >= 1, "camera.smooth_frames %d must be at least 1", cam.SmoothFrames)
	check(cam.DragTime >= 0, "camera.drag_time %v must not be negative", cam.DragTime)
	check(cam.Eye != cam.LookAt, "camera.eye and camera.look_at coincide")
	if cam.Boundary.Enabled {
		for i := range 3 {
			check(cam.Boundary.Min[i] <= cam.Boundary.Max[i], "camera.boundary min %v exceeds max %v", cam.Boundary.Min, cam.Boundary.Max)
		}
	}

	r := c.Orbit.Radius
	check(r.Min > 0, "orbit.radius.min %v must be positive", r.Min)
	check(r.Max == 0 || r.Max >= r.Min, "orbit.radius.max %v below min %v", r.Max, r.Min)

	for name, list := range map[string][]string{
		"orbit.rotate_model":          c.Orbit.RotateModel,
		"orbit.zoom":                  c.Orbit.Zoom,
		"orbit.rotate_camera":         c.Orbit.RotateCamera,
		"first_person.rotate_buttons": c.FirstPerson.RotateButtons,
	} {
		if _, err := ParseButtons(list); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	v := c.Viewer
	check(v.FPS > 0, "viewer.fps %d must be positive", v.FPS)
	check(v.Zoom.MinDeg > 0 && v.Zoom.MinDeg <= v.Zoom.MaxDeg && v.Zoom.MaxDeg < 180,
		"viewer.zoom range [%v, %v] invalid", v.Zoom.MinDeg, v.Zoom.MaxDeg)
	for name, hex := range map[string]string{"viewer.background": v.Background, "viewer.foreground": v.Foreground} {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ParseButtons turns button names into a mask.
func ParseButtons(names []string) (camera.Button, error) {
	var mask camera.Button
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "left":
			mask |= camera.ButtonLeft
		case "middle":
			mask |= camera.ButtonMiddle
		case "right":
			mask |= camera.ButtonRight
		case "wheel":
			mask |= camera.ButtonWheel
		default:
			return 0, fmt.Errorf("unknown button %q", n)
		}
	}
	return mask, nil
}

// Options returns the camera options shared by both cameras.
func (c *Config) Options() []camera.Option {
	cam := c.Camera
	opts := []camera.Option{
		camera.WithViewParams(cam.Eye.vec(), cam.LookAt.vec()),
		camera.WithProjParams(cam.FOVDeg*math.Pi/180, 1, cam.Near, cam.Far),
		camera.WithScalers(cam.RotationScaler, cam.MoveScaler),
		camera.WithSmoothFrames(cam.SmoothFrames),
		camera.WithYAxisMovement(cam.YAxisMovement),
	}
	if cam.DragTime > 0 {
		opts = append(opts, camera.WithDrag(cam.DragTime))
	}
	if cam.InvertPitch {
		opts = append(opts, camera.WithInvertPitch())
	}
	if cam.Boundary.Enabled {
		opts = append(opts, camera.WithBoundary(cam.Boundary.Min.vec(), cam.Boundary.Max.vec()))
	}
	return opts
}

// ApplyOrbit applies the orbit settings to c. The config must have passed
// Validate.
func (c *Config) ApplyOrbit(mv *camera.ModelViewerCamera) {
	o := c.Orbit
	maxRadius := o.Radius.Max
	if maxRadius == 0 {
		maxRadius = math.Inf(1)
	}
	mv.SetRadius(o.Radius.Default, o.Radius.Min, maxRadius)

	model, _ := ParseButtons(o.RotateModel)
	zoom, _ := ParseButtons(o.Zoom)
	cam, _ := ParseButtons(o.RotateCamera)
	mv.SetButtonMasks(model, zoom, cam)
	mv.SetAttachCameraToModel(o.AttachCameraToModel)
	mv.SetEnablePositionMovement(o.PositionMovement)
}

// ApplyFirstPerson applies the first-person settings to fp. The config must
// have passed Validate.
func (c *Config) ApplyFirstPerson(fp *camera.FirstPersonCamera) {
	f := c.FirstPerson
	mask, _ := ParseButtons(f.RotateButtons)
	fp.SetRotateButtons(mask&camera.ButtonLeft != 0, mask&camera.ButtonMiddle != 0, mask&camera.ButtonRight != 0, f.RotateWithoutButton)
	fp.SetEnablePositionMovement(f.PositionMovement)
}

// RGB parses a validated hex color.
func RGB(hex string) (r, g, b uint8) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}
	return c.RGB255()
}

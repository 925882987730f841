// arcball - terminal model viewer driven by the arcball camera controllers.
//
// Controls (orbit mode):
//
//	Left drag    - Rotate model
//	Right drag   - Swing camera around the model
//	Scroll       - Orbit radius
//
// Controls (fps mode):
//
//	Drag         - Look around
//	W/S/A/D      - Move and strafe (arrows too)
//	Q/E          - Down/up (PgDn/PgUp too)
//
// Both:
//
//	Home         - Reset camera
//	+/-          - Zoom field of view
//	?            - Toggle HUD overlay
//	Esc          - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/arcball/pkg/config"
	"github.com/taigrr/arcball/pkg/math3d"
	"github.com/taigrr/arcball/pkg/models"
	"github.com/taigrr/arcball/pkg/trace"
)

var (
	mode       = flag.String("mode", "orbit", "Camera mode: orbit or fps")
	configPath = flag.String("config", "", "Path to YAML config (embedded defaults if empty)")
	targetFPS  = flag.Int("fps", 0, "Target FPS (overrides config)")
	tracePath  = flag.String("trace", "", "Write per-frame camera poses to this CSV file")
	logPath    = flag.String("log", "", "Write logs to this file")
	debug      = flag.Bool("debug", false, "Log at debug level")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "arcball - Terminal 3D Camera Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: arcball [options] [model.gltf|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  orbit: left drag rotates the model, right drag the camera, scroll zooms\n")
		fmt.Fprintf(os.Stderr, "  fps:   drag looks, W/S/A/D/Q/E or arrows/PgUp/PgDn move\n")
		fmt.Fprintf(os.Stderr, "  Home  - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  +/-   - Zoom field of view\n")
		fmt.Fprintf(os.Stderr, "  ?     - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc   - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a logger writing to path, or discarding everything when
// path is empty.
func newLogger(path string, debug bool) (*slog.Logger, func() error, error) {
	var w io.Writer = io.Discard
	closer := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "arcball",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return slog.New(handler), closer, nil
}

// loadMesh loads path, or a cube if path is empty, then centers it on the
// origin and scales its largest dimension to 2.
func loadMesh(path string) (*models.Mesh, error) {
	mesh := models.Cube(2)
	if path != "" {
		var err error
		mesh, err = models.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
	}

	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		mesh.Transform(math3d.Translate(center.Negate()).Then(math3d.ScaleUniform(scale)))
	}
	return mesh, nil
}

func run(modelPath string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *targetFPS > 0 {
		cfg.Viewer.FPS = *targetFPS
	}

	logger, closeLog, err := newLogger(*logPath, *debug)
	if err != nil {
		return err
	}
	defer closeLog()

	mesh, err := loadMesh(modelPath)
	if err != nil {
		return err
	}
	logger.Info("loaded model", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	cam, err := newCamera(cfg, *mode, logger)
	if err != nil {
		return err
	}

	rec, err := trace.Create(*tracePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Error("close trace", "err", err)
		}
	}()

	v := newViewer(cfg, cam, mesh, rec, logger)

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	v.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Events are handed to the frame loop so the camera is only touched
	// from one goroutine.
	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.Viewer.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down", "frames", rec.Frames())
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

	drain:
		for {
			select {
			case ev := <-events:
				if ws, ok := ev.(uv.WindowSizeEvent); ok {
					term.Erase()
					term.Resize(ws.Width, ws.Height)
				}
				if v.Handle(ev, now) {
					cancel()
					break drain
				}
			default:
				break drain
			}
		}

		if err := v.Step(dt, now); err != nil {
			return fmt.Errorf("record frame: %w", err)
		}

		v.Draw(term)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		v.Overlay()

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// Package trace records camera poses frame by frame as CSV.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/taigrr/arcball/pkg/math3d"
)

// Poser is the part of a camera a Recorder reads.
type Poser interface {
	EyePt() math3d.Vec3
	LookAtPt() math3d.Vec3
}

// Sample is one CSV row.
type Sample struct {
	Frame   int     `csv:"frame"`
	Elapsed float64 `csv:"elapsed"`
	EyeX    float64 `csv:"eye_x"`
	EyeY    float64 `csv:"eye_y"`
	EyeZ    float64 `csv:"eye_z"`
	LookAtX float64 `csv:"look_at_x"`
	LookAtY float64 `csv:"look_at_y"`
	LookAtZ float64 `csv:"look_at_z"`
}

// Recorder appends samples to a writer. A nil *Recorder discards them.
type Recorder struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	frame         int
}

// NewRecorder writes samples to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Create opens path for recording. It returns nil if path is empty
// (recording disabled).
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	return &Recorder{w: f, closer: f}, nil
}

// Record writes the pose of c after a frame of elapsed seconds.
func (r *Recorder) Record(elapsed float64, c Poser) error {
	if r == nil {
		return nil
	}

	eye, at := c.EyePt(), c.LookAtPt()
	records := []Sample{{
		Frame:   r.frame,
		Elapsed: elapsed,
		EyeX:    eye.X,
		EyeY:    eye.Y,
		EyeZ:    eye.Z,
		LookAtX: at.X,
		LookAtY: at.Y,
		LookAtZ: at.Z,
	}}
	r.frame++

	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Frames returns the number of samples recorded.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	return r.frame
}

// Close closes the file opened by Create.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Read parses a recorded trace.
func Read(in io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(in, &samples); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return samples, nil
}

package main

import (
	"math"
	"testing"

	"github.com/taigrr/arcball/pkg/config"
)

var testZoom = config.ZoomConfig{StepDeg: 5, MinDeg: 10, MaxDeg: 60, Frequency: 6, Damping: 1}

func TestFOVZoomSettles(t *testing.T) {
	z := newFOVZoom(testZoom, 30, 45)
	z.In()
	z.In()

	if !z.Update() {
		t.Fatal("first update did not move the field of view")
	}
	for range 300 {
		z.Update()
	}
	if z.fov != 35 {
		t.Errorf("fov = %v, want 35", z.fov)
	}
	if z.Update() {
		t.Error("settled spring still reports movement")
	}
	if math.Abs(z.Radians()-35*math.Pi/180) > 1e-12 {
		t.Errorf("Radians = %v", z.Radians())
	}
}

func TestFOVZoomClamps(t *testing.T) {
	tests := []struct {
		name  string
		steps func(z *fovZoom)
		want  float64
	}{
		{"in past min", func(z *fovZoom) {
			for range 20 {
				z.In()
			}
		}, 10},
		{"out past max", func(z *fovZoom) {
			for range 20 {
				z.Out()
			}
		}, 60},
		{"reset", func(z *fovZoom) {
			z.Out()
			z.Reset()
		}, 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			z := newFOVZoom(testZoom, 30, 45)
			tc.steps(z)
			if z.target != tc.want {
				t.Errorf("target = %v, want %v", z.target, tc.want)
			}
		})
	}
}

func TestIdleSpin(t *testing.T) {
	s := newIdleSpin(config.IdleSpinConfig{Speed: 1, Frequency: 4, Damping: 1}, 30)

	var v float64
	for range 300 {
		v = s.Update(true)
	}
	if math.Abs(v-1) > 1e-3 {
		t.Errorf("idle rate = %v, want 1", v)
	}

	for range 300 {
		v = s.Update(false)
	}
	if v != 0 {
		t.Errorf("rate while busy = %v, want 0", v)
	}
}

func TestIdleSpinDisabled(t *testing.T) {
	s := newIdleSpin(config.IdleSpinConfig{Speed: 0, Frequency: 2, Damping: 1}, 30)
	if v := s.Update(true); v != 0 {
		t.Errorf("rate = %v, want 0", v)
	}
}

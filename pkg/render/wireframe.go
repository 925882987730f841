package render

import (
	"math"

	"github.com/taigrr/arcball/pkg/math3d"
)

// Wireframe draws 3D line segments into a framebuffer through a
// world-view-projection transform. Clip space follows Direct3D: a point is
// visible when -w <= x, y <= w and 0 <= z <= w.
type Wireframe struct {
	fb      *Framebuffer
	wvp     math3d.Mat4
	frustum Frustum

	// Drawn and Culled count segments and meshes since the last
	// SetTransform.
	Drawn  int
	Culled int
}

// NewWireframe creates a wireframe renderer with an identity transform.
func NewWireframe(fb *Framebuffer) *Wireframe {
	w := &Wireframe{fb: fb}
	w.SetTransform(math3d.Identity(), math3d.Identity(), math3d.Identity())
	return w
}

// SetTransform sets the matrices later draws go through and resets the
// counters.
func (w *Wireframe) SetTransform(world, view, proj math3d.Mat4) {
	w.wvp = world.Then(view).Then(proj)
	w.frustum = NewFrustumFromMatrix(w.wvp)
	w.Drawn, w.Culled = 0, 0
}

// Project maps p to framebuffer coordinates. ok is false when p is outside
// the view volume.
func (w *Wireframe) Project(p math3d.Vec3) (x, y float64, ok bool) {
	c := w.wvp.MulVec4(math3d.V4FromV3(p, 1))
	if !inside(c) {
		return 0, 0, false
	}
	x, y = w.toScreen(c)
	return x, y, true
}

// DrawLine3D draws the visible part of the segment p1-p2. It reports
// whether anything was drawn.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, c Color) bool {
	a := w.wvp.MulVec4(math3d.V4FromV3(p1, 1))
	b := w.wvp.MulVec4(math3d.V4FromV3(p2, 1))
	a, b, ok := clipSegment(a, b)
	if !ok {
		return false
	}

	x1, y1 := w.pixel(w.toScreen(a))
	x2, y2 := w.pixel(w.toScreen(b))
	w.fb.DrawLine(x1, y1, x2, y2, c)
	w.Drawn++
	return true
}

// DrawEdges draws mesh edges after checking the mesh bounds against the
// frustum. It returns the number of edges drawn.
func (w *Wireframe) DrawEdges(positions []math3d.Vec3, edges [][2]int, bounds AABB, c Color) int {
	if !w.frustum.IntersectAABB(bounds) {
		w.Culled++
		return 0
	}
	n := 0
	for _, e := range edges {
		if w.DrawLine3D(positions[e[0]], positions[e[1]], c) {
			n++
		}
	}
	return n
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawGrid draws a grid on the XZ plane at height y.
func (w *Wireframe) DrawGrid(size, step, y float64, c Color) {
	half := size / 2
	n := int(math.Round(size / step))
	for i := 0; i <= n; i++ {
		v := -half + float64(i)*step
		w.DrawLine3D(math3d.V3(v, y, -half), math3d.V3(v, y, half), c)
		w.DrawLine3D(math3d.V3(-half, y, v), math3d.V3(half, y, v), c)
	}
}

func (w *Wireframe) toScreen(c math3d.Vec4) (float64, float64) {
	ndc := c.PerspectiveDivide()
	x := (ndc.X + 1) / 2 * float64(w.fb.Width)
	y := (1 - ndc.Y) / 2 * float64(w.fb.Height)
	return x, y
}

// pixel keeps the right and bottom edges of the view volume on screen.
func (w *Wireframe) pixel(x, y float64) (int, int) {
	px := min(int(math.Floor(x)), w.fb.Width-1)
	py := min(int(math.Floor(y)), w.fb.Height-1)
	return px, py
}

// clipDistances returns the signed distances of c to the six clip planes.
func clipDistances(c math3d.Vec4) [6]float64 {
	return [6]float64{c.W + c.X, c.W - c.X, c.W + c.Y, c.W - c.Y, c.Z, c.W - c.Z}
}

func inside(c math3d.Vec4) bool {
	for _, d := range clipDistances(c) {
		if d < 0 {
			return false
		}
	}
	return c.W > 0
}

// clipSegment trims a-b to the view volume in homogeneous coordinates
// (Liang-Barsky).
func clipSegment(a, b math3d.Vec4) (math3d.Vec4, math3d.Vec4, bool) {
	da, db := clipDistances(a), clipDistances(b)
	t0, t1 := 0.0, 1.0
	for i := range da {
		switch {
		case da[i] < 0 && db[i] < 0:
			return a, b, false
		case da[i] < 0:
			t0 = math.Max(t0, da[i]/(da[i]-db[i]))
		case db[i] < 0:
			t1 = math.Min(t1, da[i]/(da[i]-db[i]))
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	ca, cb := a.Lerp(b, t0), a.Lerp(b, t1)
	if ca.W <= 0 || cb.W <= 0 {
		return a, b, false
	}
	return ca, cb, true
}

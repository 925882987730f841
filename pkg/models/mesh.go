// Package models provides triangle meshes for the viewer.
package models

import (
	"github.com/taigrr/arcball/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Faces     [][3]int // indices into Positions

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the radius of the sphere around the bounding box.
func (m *Mesh) Radius() float64 {
	return m.Size().Len() / 2
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Transform applies mat to every vertex.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mat.MulVec3(p)
	}
	m.CalculateBounds()
}

// Edges returns each undirected triangle edge once, in the order the faces
// first use them, with the lower index first.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Faces)*3/2)
	edges := make([][2]int, 0, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for j := range 3 {
			a, b := f[j], f[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// Cube returns an axis-aligned cube of the given edge length centered on
// the origin.
func Cube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	for i := range 8 {
		x, y, z := -h, -h, -h
		if i&1 != 0 {
			x = h
		}
		if i&2 != 0 {
			y = h
		}
		if i&4 != 0 {
			z = h
		}
		m.Positions = append(m.Positions, math3d.V3(x, y, z))
	}
	m.Faces = [][3]int{
		{0, 2, 3}, {0, 3, 1}, // -Z
		{4, 5, 7}, {4, 7, 6}, // +Z
		{0, 4, 6}, {0, 6, 2}, // -X
		{1, 3, 7}, {1, 7, 5}, // +X
		{0, 1, 5}, {0, 5, 4}, // -Y
		{2, 6, 7}, {2, 7, 3}, // +Y
	}
	m.CalculateBounds()
	return m
}

package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/arcball/pkg/math3d"
)

// Load loads a glTF (.gltf) or binary glTF (.glb) file and merges every
// triangle primitive into one mesh.
func Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return FromDocument(doc, filepath.Base(path))
}

// FromDocument builds a mesh from a decoded glTF document.
func FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := addMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: no triangles", name)
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func addMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines, points and strips carry no faces.
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Positions)
		for _, p := range positions {
			mesh.Positions = append(mesh.Positions, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// Unindexed primitives list their vertices in order.
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := [3]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])}
			for _, v := range f {
				if v >= len(positions) {
					return fmt.Errorf("index %d out of range for %d vertices", v, len(positions))
				}
			}
			mesh.Faces = append(mesh.Faces, [3]int{base + f[0], base + f[1], base + f[2]})
		}
	}
	return nil
}

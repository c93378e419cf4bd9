package engine

import (
	"fmt"

	"github.com/hschendel/stl"

	"skyline/internal/util"
	"skyline/pkg/heightfield"
)

// BuildMesh triangulates the finest level of a height field. Vertices sit
// at cell centres, two triangles per quad of neighbouring cells, Z up.
func BuildMesh(hf *heightfield.HeightField) (*stl.Solid, error) {
	leaf := hf.Levels() - 1
	n := hf.Size()
	if n < 2 {
		return nil, fmt.Errorf("height field of %d cells has no quads", n*n)
	}

	p := hf.Pyramid()
	vertex := func(x, y int) (Vector3, error) {
		h, err := p.Get(leaf, x, y)
		if err != nil {
			return Vector3{}, err
		}
		c := hf.CellCenter(leaf, x, y)
		return Vector3{X: c.X, Y: c.Z, Z: h}, nil
	}

	solid := &stl.Solid{
		Name:      "skyline",
		Triangles: make([]stl.Triangle, 0, 2*(n-1)*(n-1)),
	}
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			var q [4]Vector3
			for i, off := range [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
				v, err := vertex(x+off[0], y+off[1])
				if err != nil {
					return nil, err
				}
				q[i] = v
			}
			solid.Triangles = append(solid.Triangles,
				triangle(q[0], q[1], q[2]),
				triangle(q[0], q[2], q[3]))
		}
	}
	return solid, nil
}

// triangle builds a counter-clockwise STL facet with its unit normal
func triangle(a, b, c Vector3) stl.Triangle {
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return stl.Triangle{
		Normal:   vec3(normal),
		Vertices: [3]stl.Vec3{vec3(a), vec3(b), vec3(c)},
	}
}

func vec3(v Vector3) stl.Vec3 {
	return stl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// ExportSTL writes the finest level of hf to path as binary STL
func ExportSTL(hf *heightfield.HeightField, path string) error {
	solid, err := BuildMesh(hf)
	if err != nil {
		return err
	}
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	if err := solid.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

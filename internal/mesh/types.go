package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Position is a vertex location in model space.
type Position = mgl32.Vec3

// Triangle holds three vertex indices. Index order defines winding.
type Triangle struct {
	V0, V1, V2 uint32
}

// Indices returns the triangle's vertex indices in winding order.
func (t Triangle) Indices() [3]uint32 {
	return [3]uint32{t.V0, t.V1, t.V2}
}

// Mesh holds vertex positions and triangles indexing into them.
// The order of Vertices is the index space of Triangles.
type Mesh struct {
	Name      string
	Vertices  []Position
	Triangles []Triangle
}

// Clone returns a deep copy of m.
func (m Mesh) Clone() Mesh {
	out := Mesh{Name: m.Name}
	if m.Vertices != nil {
		out.Vertices = append([]Position(nil), m.Vertices...)
	}
	if m.Triangles != nil {
		out.Triangles = append([]Triangle(nil), m.Triangles...)
	}
	return out
}

// Validate reports the first triangle with an index outside the vertex range.
func (m Mesh) Validate() error {
	n := uint32(len(m.Vertices))
	for i, t := range m.Triangles {
		if t.V0 >= n || t.V1 >= n || t.V2 >= n {
			return fmt.Errorf("mesh: triangle %d (%d, %d, %d) out of range for %d vertices",
				i, t.V0, t.V1, t.V2, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// ok is false for a mesh without vertices.
func (m Mesh) Bounds() (lo, hi Position, ok bool) {
	if len(m.Vertices) == 0 {
		return Position{}, Position{}, false
	}
	inf := float32(math.Inf(1))
	lo = Position{inf, inf, inf}
	hi = Position{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		for k := 0; k < 3; k++ {
			if v[k] < lo[k] {
				lo[k] = v[k]
			}
			if v[k] > hi[k] {
				hi[k] = v[k]
			}
		}
	}
	return lo, hi, true
}

package weld

import (
	"math"

	"meshweld/internal/mesh"
)

// GridScale is the number of grid cells per spatial unit.
// Cell edge length is 1/GridScale.
const GridScale = 10

// Cell is a quantized grid coordinate, the weld key.
type Cell [3]int64

// CellOf quantizes p to its grid cell: floor(p * GridScale) per component.
func CellOf(p mesh.Position) Cell {
	s := p.Mul(GridScale)
	return Cell{
		int64(math.Floor(float64(s[0]))),
		int64(math.Floor(float64(s[1]))),
		int64(math.Floor(float64(s[2]))),
	}
}

// cellRecord is the canonical vertex of one occupied cell.
// pos is the first original position that landed in the cell.
type cellRecord struct {
	index uint32
	pos   mesh.Position
}

// Stats counts what a Welder has seen so far.
type Stats struct {
	Meshes     int `json:"meshes"`
	InputTris  int `json:"input_triangles"`
	Kept       int `json:"kept_triangles"`
	Degenerate int `json:"degenerate_triangles"`
	OutOfRange int `json:"out_of_range_triangles"`
	Vertices   int `json:"vertices"`
}

// Welder merges meshes by fusing vertices that share a grid cell.
//
// A Welder is not safe for concurrent use. Canonical indices are assigned
// in call order, so Append calls must be sequential.
type Welder struct {
	cells map[Cell]cellRecord
	tris  []mesh.Triangle
	next  uint32
	stats Stats
}

// New returns an empty Welder.
func New() *Welder {
	return &Welder{cells: make(map[Cell]cellRecord)}
}

// Append welds all triangles of m into the accumulated result.
// Triangles whose vertices fall into fewer than three distinct cells are
// dropped. m is not modified.
func (w *Welder) Append(m mesh.Mesh) {
	w.stats.Meshes++
	n := uint32(len(m.Vertices))

	for _, t := range m.Triangles {
		w.stats.InputTris++

		idx := t.Indices()
		if idx[0] >= n || idx[1] >= n || idx[2] >= n {
			w.stats.OutOfRange++
			continue
		}

		var pos [3]mesh.Position
		var cells [3]Cell
		for i, vi := range idx {
			pos[i] = m.Vertices[vi]
			cells[i] = CellOf(pos[i])
		}

		if cells[0] == cells[1] || cells[1] == cells[2] || cells[2] == cells[0] {
			w.stats.Degenerate++
			continue
		}

		var out [3]uint32
		for i := range cells {
			out[i] = w.resolve(cells[i], pos[i])
		}
		w.tris = append(w.tris, mesh.Triangle{V0: out[0], V1: out[1], V2: out[2]})
		w.stats.Kept++
	}
}

// resolve returns the canonical index for c, allocating one with p as the
// representative position if c is unoccupied.
func (w *Welder) resolve(c Cell, p mesh.Position) uint32 {
	if rec, ok := w.cells[c]; ok {
		return rec.index
	}
	idx := w.next
	w.cells[c] = cellRecord{index: idx, pos: p}
	w.next++
	return idx
}

// Mesh returns the welded result as an independent copy. It does not
// consume state; repeated calls without Append in between are equal.
func (w *Welder) Mesh() mesh.Mesh {
	out := mesh.Mesh{
		Vertices:  make([]mesh.Position, w.next),
		Triangles: make([]mesh.Triangle, len(w.tris)),
	}
	for _, rec := range w.cells {
		out.Vertices[rec.index] = rec.pos
	}
	copy(out.Triangles, w.tris)
	return out
}

// Len returns the number of canonical vertices assigned so far.
func (w *Welder) Len() int {
	return int(w.next)
}

// Stats returns counters for everything appended so far.
func (w *Welder) Stats() Stats {
	s := w.stats
	s.Vertices = int(w.next)
	return s
}

// Weld appends every mesh in order to a fresh Welder and returns the result.
func Weld(meshes []mesh.Mesh) (mesh.Mesh, Stats) {
	w := New()
	for _, m := range meshes {
		w.Append(m)
	}
	return w.Mesh(), w.Stats()
}

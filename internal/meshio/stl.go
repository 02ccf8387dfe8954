package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"meshweld/internal/mesh"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 4*3*4 + 2
)

func readSTLFile(path string) ([]mesh.Mesh, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := DecodeSTL(raw)
	if err != nil {
		return nil, err
	}
	return []mesh.Mesh{m}, nil
}

// DecodeSTL parses binary or ASCII STL. Every facet contributes three
// fresh vertices; no deduplication happens here.
func DecodeSTL(raw []byte) (mesh.Mesh, error) {
	if isASCIISTL(raw) {
		return readASCIISTL(bytes.NewReader(raw))
	}
	return readBinarySTL(raw)
}

// isASCIISTL reports whether raw looks like ASCII STL. Binary headers may
// also start with "solid", so data whose length matches its own facet
// count is binary, and ASCII needs a "facet" keyword as well.
func isASCIISTL(raw []byte) bool {
	if len(raw) >= stlHeaderSize+4 {
		n := uint64(binary.LittleEndian.Uint32(raw[stlHeaderSize:]))
		if uint64(len(raw)) == stlHeaderSize+4+n*stlFacetSize {
			return false
		}
	}
	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("solid")) &&
		bytes.Contains(head, []byte("facet"))
}

func readBinarySTL(raw []byte) (mesh.Mesh, error) {
	if len(raw) < stlHeaderSize+4 {
		return mesh.Mesh{}, fmt.Errorf("stl: truncated header")
	}
	name := strings.TrimRight(string(raw[:stlHeaderSize]), " \x00")
	n := int(binary.LittleEndian.Uint32(raw[stlHeaderSize:]))

	body := raw[stlHeaderSize+4:]
	if len(body) < n*stlFacetSize {
		return mesh.Mesh{}, fmt.Errorf("stl: %d facets declared, data holds %d", n, len(body)/stlFacetSize)
	}

	m := mesh.Mesh{
		Name:      name,
		Vertices:  make([]mesh.Position, 0, n*3),
		Triangles: make([]mesh.Triangle, 0, n),
	}
	for i := 0; i < n; i++ {
		facet := body[i*stlFacetSize:]
		base := uint32(len(m.Vertices))
		for v := 0; v < 3; v++ {
			var p mesh.Position
			for c := 0; c < 3; c++ {
				const start = 3 * 4 // skip normal
				p[c] = math.Float32frombits(binary.LittleEndian.Uint32(facet[start+12*v+4*c:]))
			}
			m.Vertices = append(m.Vertices, p)
		}
		m.Triangles = append(m.Triangles, mesh.Triangle{V0: base, V1: base + 1, V2: base + 2})
	}
	return m, nil
}

func readASCIISTL(r io.Reader) (mesh.Mesh, error) {
	var (
		m     mesh.Mesh
		facet []mesh.Position
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			if m.Name == "" {
				m.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			facet = facet[:0]
		case "vertex":
			if len(fields) < 4 {
				return mesh.Mesh{}, fmt.Errorf("stl: line %d: vertex needs 3 coordinates", line)
			}
			var p mesh.Position
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[1+k], 32)
				if err != nil {
					return mesh.Mesh{}, fmt.Errorf("stl: line %d: %w", line, err)
				}
				p[k] = float32(f)
			}
			facet = append(facet, p)
		case "endfacet":
			if len(facet) != 3 {
				return mesh.Mesh{}, fmt.Errorf("stl: line %d: facet has %d vertices", line, len(facet))
			}
			base := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, facet...)
			m.Triangles = append(m.Triangles, mesh.Triangle{V0: base, V1: base + 1, V2: base + 2})
		}
	}
	if err := sc.Err(); err != nil {
		return mesh.Mesh{}, fmt.Errorf("stl: %w", err)
	}
	return m, nil
}

func writeSTLFile(path string, m mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSTL(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSTL writes m as binary STL with computed facet normals.
func WriteSTL(w io.Writer, m mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, stlHeaderSize)
	copy(header, "meshweld "+m.Name)
	bw.Write(header)

	var buf [4*3*4 + 2]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(m.Triangles)))
	bw.Write(buf[:4])

	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t.V0], m.Vertices[t.V1], m.Vertices[t.V2]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		for i, v := range [4]mesh.Position{n, a, b, c} {
			for k := 0; k < 3; k++ {
				binary.LittleEndian.PutUint32(buf[i*12+k*4:], math.Float32bits(v[k]))
			}
		}
		buf[48], buf[49] = 0, 0
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

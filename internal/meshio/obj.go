package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"meshweld/internal/mesh"
)

const defaultMaterial = "DefaultMaterial"

func readOBJFile(path string) ([]mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOBJ(f)
}

// objGroup collects the faces of one "o"/"g" section, remapping global
// vertex numbers to a per-mesh index space.
type objGroup struct {
	mesh  mesh.Mesh
	local map[int]uint32
}

func newOBJGroup(name string) *objGroup {
	return &objGroup{mesh: mesh.Mesh{Name: name}, local: make(map[int]uint32)}
}

func (g *objGroup) index(global int, positions []mesh.Position) uint32 {
	if i, ok := g.local[global]; ok {
		return i
	}
	i := uint32(len(g.mesh.Vertices))
	g.mesh.Vertices = append(g.mesh.Vertices, positions[global])
	g.local[global] = i
	return i
}

// ReadOBJ parses Wavefront OBJ geometry. Each "o" or "g" record starts a
// new mesh; polygons are fan-triangulated. Only positions are read.
func ReadOBJ(r io.Reader) ([]mesh.Mesh, error) {
	var (
		positions []mesh.Position
		groups    []*objGroup
		cur       *objGroup
		poly      []uint32
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: vertex needs 3 coordinates, found %d", line, len(fields)-1)
			}
			var p mesh.Position
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[1+k], 32)
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", line, err)
				}
				p[k] = float32(f)
			}
			positions = append(positions, p)

		case "o", "g":
			name := strings.Join(fields[1:], " ")
			cur = newOBJGroup(name)
			groups = append(groups, cur)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: face needs at least 3 vertices, found %d", line, len(fields)-1)
			}
			if cur == nil {
				cur = newOBJGroup("default")
				groups = append(groups, cur)
			}
			poly = poly[:0]
			for _, tok := range fields[1:] {
				global, err := objVertexIndex(tok, len(positions))
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", line, err)
				}
				poly = append(poly, cur.index(global, positions))
			}
			cur.mesh.Triangles = fan(cur.mesh.Triangles, poly)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	meshes := make([]mesh.Mesh, 0, len(groups))
	for _, g := range groups {
		meshes = append(meshes, g.mesh)
	}
	return meshes, nil
}

// objVertexIndex resolves a face token ("i", "i/t", "i//n", "i/t/n") to a
// zero-based vertex number. Negative numbers are relative to the end.
func objVertexIndex(tok string, count int) (int, error) {
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		tok = tok[:slash]
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i = count + i
	default:
		return 0, fmt.Errorf("face index 0")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("face index %s out of range (%d vertices)", tok, count)
	}
	return i, nil
}

func writeOBJFile(path string, m mesh.Mesh) error {
	mtlName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".mtl"
	mtlPath := filepath.Join(filepath.Dir(path), mtlName)
	if err := os.WriteFile(mtlPath, []byte("newmtl "+defaultMaterial+"\n"), 0644); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, m, mtlName); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteOBJ writes m as a single OBJ object using one default material.
// mtllib is omitted when empty.
func WriteOBJ(w io.Writer, m mesh.Mesh, mtllib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# meshweld: %d vertices, %d triangles\n", len(m.Vertices), len(m.Triangles))
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	name := m.Name
	if name == "" {
		name = "welded"
	}
	fmt.Fprintf(bw, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", fmtFloat(v[0]), fmtFloat(v[1]), fmtFloat(v[2]))
	}
	fmt.Fprintf(bw, "usemtl %s\n", defaultMaterial)
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", t.V0+1, t.V1+1, t.V2+1)
	}
	return bw.Flush()
}

func fmtFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

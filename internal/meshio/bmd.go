package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"meshweld/internal/bmd"
	"meshweld/internal/mesh"
)

func readBMDFile(path string) ([]mesh.Mesh, error) {
	model, err := bmd.Parse(path)
	if err != nil {
		return nil, err
	}
	return FromBMD(model), nil
}

// FromBMD converts parsed BMD sub-meshes. Quads are split into 0-1-2 and
// 0-2-3; faces referencing missing vertices are skipped.
func FromBMD(model bmd.Model) []mesh.Mesh {
	meshes := make([]mesh.Mesh, 0, len(model.Meshes))
	for i, bm := range model.Meshes {
		m := mesh.Mesh{
			Name:     bmdMeshName(model.Name, i, bm.TexPath),
			Vertices: make([]mesh.Position, len(bm.Verts)),
		}
		for j, v := range bm.Verts {
			m.Vertices[j] = mesh.Position{v[0], v[1], v[2]}
		}

		n := len(bm.Verts)
		for _, t := range bm.Tris {
			corners := 3
			if t.Polygon == 4 {
				corners = 4
			}
			poly := make([]uint32, 0, 4)
			valid := true
			for k := 0; k < corners; k++ {
				vi := int(t.VI[k])
				if vi < 0 || vi >= n {
					valid = false
					break
				}
				poly = append(poly, uint32(vi))
			}
			if valid {
				m.Triangles = fan(m.Triangles, poly)
			}
		}
		meshes = append(meshes, m)
	}
	return meshes
}

// bmdMeshName labels a sub-mesh by its texture stem, which is how BMD
// tooling identifies parts.
func bmdMeshName(model string, i int, texPath string) string {
	stem := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	if stem == "" || stem == "." {
		return fmt.Sprintf("%s#%d", model, i)
	}
	return fmt.Sprintf("%s#%d:%s", model, i, stem)
}

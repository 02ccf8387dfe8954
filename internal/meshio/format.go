// Package meshio reads and writes mesh files. The format is picked from
// the file extension.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meshweld/internal/mesh"
)

var (
	// ErrUnsupportedFormat is returned for unknown extensions, or for
	// formats that cannot be written.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")

	// ErrNoGeometry is returned when a file holds no triangles.
	ErrNoGeometry = errors.New("no usable geometry")
)

// ImportError reports a failure to read an input file.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("meshio: import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ExportError reports a failure to write an output file.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("meshio: export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Format describes one file format. Decode or Encode is nil when the
// direction is not supported.
type Format struct {
	Name   string
	Exts   []string
	Decode func(path string) ([]mesh.Mesh, error)
	Encode func(path string, m mesh.Mesh) error
}

var formats = []Format{
	{Name: "obj", Exts: []string{".obj"}, Decode: readOBJFile, Encode: writeOBJFile},
	{Name: "stl", Exts: []string{".stl"}, Decode: readSTLFile, Encode: writeSTLFile},
	{Name: "bmd", Exts: []string{".bmd"}, Decode: readBMDFile},
}

// Lookup returns the format registered for the extension of path.
func Lookup(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		for _, e := range f.Exts {
			if e == ext {
				return f, true
			}
		}
	}
	return Format{}, false
}

// Import reads all meshes from path. Every returned mesh has triangulated
// faces with indices valid for its own vertex list. Files without any
// triangle fail with ErrNoGeometry.
func Import(path string) ([]mesh.Mesh, error) {
	f, ok := Lookup(path)
	if !ok || f.Decode == nil {
		return nil, &ImportError{Path: path, Err: ErrUnsupportedFormat}
	}

	meshes, err := f.Decode(path)
	if err != nil {
		return nil, &ImportError{Path: path, Err: err}
	}

	out := meshes[:0]
	for _, m := range meshes {
		if len(m.Triangles) == 0 {
			continue
		}
		if err := m.Validate(); err != nil {
			return nil, &ImportError{Path: path, Err: err}
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, &ImportError{Path: path, Err: ErrNoGeometry}
	}
	return out, nil
}

// Export writes m to path as a single-mesh file, creating parent
// directories as needed.
func Export(path string, m mesh.Mesh) error {
	f, ok := Lookup(path)
	if !ok || f.Encode == nil {
		return &ExportError{Path: path, Err: ErrUnsupportedFormat}
	}
	if err := m.Validate(); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ExportError{Path: path, Err: err}
		}
	}
	if err := f.Encode(path, m); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// fan appends the fan triangulation of polygon poly to tris.
func fan(tris []mesh.Triangle, poly []uint32) []mesh.Triangle {
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, mesh.Triangle{V0: poly[0], V1: poly[i], V2: poly[i+1]})
	}
	return tris
}

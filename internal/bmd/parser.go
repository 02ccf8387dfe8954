package bmd

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// maxMeshes guards against garbage headers.
const maxMeshes = 100

// Parse reads a BMD file from disk.
func Parse(path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("bmd: read %s: %w", path, err)
	}
	m, err := Decode(raw)
	if err != nil {
		return Model{}, fmt.Errorf("%w (%s)", err, path)
	}
	return m, nil
}

// Decode parses an in-memory BMD file. Only unencrypted payloads
// (version 10 and older) can be decoded; versions 12 and 15 return
// ErrEncrypted.
func Decode(raw []byte) (Model, error) {
	if len(raw) < 4 || string(raw[:3]) != "BMD" {
		return Model{}, fmt.Errorf("bmd: invalid header")
	}

	version := raw[3]
	switch version {
	case 12, 15:
		return Model{}, fmt.Errorf("%w: version %d", ErrEncrypted, version)
	}

	r := &reader{data: raw[4:]}
	m, err := r.parse()
	if err != nil {
		return Model{}, err
	}
	m.Version = version
	return m, nil
}

type reader struct {
	data []byte
	off  int
}

// readStr reads a fixed-size, NUL-terminated Windows-1252 string.
func (r *reader) readStr(n int) string {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return ""
	}
	s := r.data[r.off : r.off+n]
	r.off += n
	for i, b := range s {
		if b == 0 {
			s = s[:i]
			break
		}
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(s)
	if err != nil {
		return string(s)
	}
	return string(decoded)
}

func (r *reader) readI16() int16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := int16(binary.LittleEndian.Uint16(r.data[r.off:]))
	r.off += 2
	return v
}

func (r *reader) readU16() uint16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) readF32() float32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

func (r *reader) skip(n int) {
	r.off += n
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
}

func (r *reader) parse() (Model, error) {
	name := r.readStr(32)
	meshCount := int(r.readU16())
	_ = r.readU16() // bone count
	_ = r.readU16() // action count

	if meshCount > maxMeshes {
		return Model{}, fmt.Errorf("bmd: invalid mesh count %d", meshCount)
	}

	meshes := make([]Mesh, 0, meshCount)
	for i := 0; i < meshCount; i++ {
		nv := int(r.readI16())
		nn := int(r.readI16())
		ntc := int(r.readI16())
		nt := int(r.readI16())
		_ = r.readI16() // texture index
		if nv < 0 || nn < 0 || ntc < 0 || nt < 0 {
			return Model{}, fmt.Errorf("bmd: mesh %d: negative element count", i)
		}

		// Vertices: 16 bytes each (node:i16, pad:i16, x:f32, y:f32, z:f32)
		verts := make([][3]float32, nv)
		for j := 0; j < nv; j++ {
			r.skip(4)
			verts[j][0] = r.readF32()
			verts[j][1] = r.readF32()
			verts[j][2] = r.readF32()
		}

		// Normals (20 bytes) and texcoords (8 bytes) carry no position data.
		r.skip(nn * 20)
		r.skip(ntc * 8)

		// Triangles: 64 bytes each
		tris := make([]Triangle, 0, nt)
		for j := 0; j < nt; j++ {
			base := r.off
			if base+64 > len(r.data) {
				return Model{}, fmt.Errorf("bmd: mesh %d: truncated triangle %d", i, j)
			}
			var vi [4]int16
			for k := 0; k < 4; k++ {
				vi[k] = int16(binary.LittleEndian.Uint16(r.data[base+2+k*2:]))
			}
			tris = append(tris, Triangle{Polygon: int(r.data[base]), VI: vi})
			r.off += 64
		}

		texPath := strings.ReplaceAll(r.readStr(32), "\\", "/")

		meshes = append(meshes, Mesh{
			Verts:   verts,
			Tris:    tris,
			TexPath: texPath,
		})
	}

	return Model{Name: name, Meshes: meshes}, nil
}

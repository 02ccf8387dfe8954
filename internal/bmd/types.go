package bmd

import "errors"

// ErrEncrypted is returned for BMD versions whose payload is encrypted.
var ErrEncrypted = errors.New("bmd: encrypted model versions are not supported")

// Triangle holds polygon type and vertex index slots.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int16
}

// Mesh holds parsed geometry for one sub-mesh within a BMD file.
type Mesh struct {
	Verts   [][3]float32
	Tris    []Triangle
	TexPath string // texture reference (e.g. "sword04.jpg")
}

// Model is a parsed BMD file.
type Model struct {
	Name    string
	Version byte
	Meshes  []Mesh
}

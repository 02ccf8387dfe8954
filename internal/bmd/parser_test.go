package bmd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func fixedStr(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

// buildQuad encodes a version 10 BMD holding one mesh with a single quad.
func buildQuad(name string) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("BMD")
	buf.WriteByte(10)
	buf.Write(fixedStr(name, 32))
	binary.Write(&buf, le, uint16(1)) // meshes
	binary.Write(&buf, le, uint16(0)) // bones
	binary.Write(&buf, le, uint16(0)) // actions

	binary.Write(&buf, le, int16(4)) // verts
	binary.Write(&buf, le, int16(1)) // normals
	binary.Write(&buf, le, int16(1)) // texcoords
	binary.Write(&buf, le, int16(1)) // triangles
	binary.Write(&buf, le, int16(0)) // texture

	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range verts {
		binary.Write(&buf, le, int16(0))
		binary.Write(&buf, le, int16(0))
		binary.Write(&buf, le, v)
	}
	buf.Write(make([]byte, 20)) // normal
	buf.Write(make([]byte, 8))  // texcoord

	tri := make([]byte, 64)
	tri[0] = 4
	for k := 0; k < 4; k++ {
		le.PutUint16(tri[2+k*2:], uint16(k))
	}
	buf.Write(tri)
	buf.Write(fixedStr("Item\\sword.jpg", 32))
	return buf.Bytes()
}

func TestDecodeQuad(t *testing.T) {
	m, err := Decode(buildQuad("Sword\xe9"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Name != "Swordé" {
		t.Errorf("Name = %q", m.Name)
	}
	if len(m.Meshes) != 1 {
		t.Fatalf("meshes = %d", len(m.Meshes))
	}
	got := m.Meshes[0]
	if len(got.Verts) != 4 || got.Verts[2] != [3]float32{1, 1, 0} {
		t.Errorf("verts = %v", got.Verts)
	}
	if len(got.Tris) != 1 || got.Tris[0].Polygon != 4 || got.Tris[0].VI != [4]int16{0, 1, 2, 3} {
		t.Errorf("tris = %+v", got.Tris)
	}
	if got.TexPath != "Item/sword.jpg" {
		t.Errorf("TexPath = %q", got.TexPath)
	}
}

func TestDecodeEncrypted(t *testing.T) {
	raw := append([]byte("BMD"), 15, 0, 0, 0, 0)
	if _, err := Decode(raw); !errors.Is(err, ErrEncrypted) {
		t.Fatalf("err = %v, want ErrEncrypted", err)
	}
}

func TestDecodeBadHeader(t *testing.T) {
	if _, err := Decode([]byte("OBJ\x0a")); err == nil {
		t.Fatal("expected error for invalid header")
	}
}

func TestDecodeTruncated(t *testing.T) {
	raw := buildQuad("x")
	if _, err := Decode(raw[:len(raw)-60]); err == nil {
		t.Fatal("expected error for truncated triangle data")
	}
}

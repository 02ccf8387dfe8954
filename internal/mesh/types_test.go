package mesh

import "testing"

func TestValidate(t *testing.T) {
	m := Mesh{
		Vertices:  []Position{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles: []Triangle{{0, 1, 2}},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	m.Triangles = append(m.Triangles, Triangle{0, 1, 3})
	if err := m.Validate(); err == nil {
		t.Fatal("Validate: expected error for index 3 with 3 vertices")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := Mesh{
		Name:      "a",
		Vertices:  []Position{{1, 2, 3}},
		Triangles: []Triangle{{0, 0, 0}},
	}
	c := m.Clone()
	c.Vertices[0] = Position{9, 9, 9}
	c.Triangles[0] = Triangle{1, 1, 1}

	if m.Vertices[0] != (Position{1, 2, 3}) {
		t.Errorf("original vertex changed: %v", m.Vertices[0])
	}
	if m.Triangles[0] != (Triangle{}) {
		t.Errorf("original triangle changed: %v", m.Triangles[0])
	}
}

func TestBounds(t *testing.T) {
	if _, _, ok := (Mesh{}).Bounds(); ok {
		t.Fatal("Bounds of empty mesh should not be ok")
	}

	m := Mesh{Vertices: []Position{{-1, 2, 0}, {3, -4, 5}, {0, 0, -6}}}
	lo, hi, ok := m.Bounds()
	if !ok {
		t.Fatal("Bounds: not ok")
	}
	if lo != (Position{-1, -4, -6}) {
		t.Errorf("lo = %v", lo)
	}
	if hi != (Position{3, 2, 5}) {
		t.Errorf("hi = %v", hi)
	}
}

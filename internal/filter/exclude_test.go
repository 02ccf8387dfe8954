package filter

import (
	"testing"

	"meshweld/internal/mesh"
)

func TestExcludeMatch(t *testing.T) {
	ex, err := NewExclude([]string{"Glow", "re:^helper\\d+$", " "})
	if err != nil {
		t.Fatalf("NewExclude: %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"sword_glow_fx", true},
		{"HELPER02", true},
		{"helper02_body", false},
		{"blade", false},
	}
	for _, tt := range tests {
		if got := ex.Match(tt.name); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExcludeApply(t *testing.T) {
	ex, _ := NewExclude([]string{"aura"})
	in := []mesh.Mesh{{Name: "body"}, {Name: "Aura01"}, {Name: "hilt"}}

	kept, dropped := ex.Apply(in)
	if dropped != 1 || len(kept) != 2 || kept[0].Name != "body" || kept[1].Name != "hilt" {
		t.Fatalf("kept %v, dropped %d", kept, dropped)
	}
}

func TestExcludeNil(t *testing.T) {
	var ex *Exclude
	in := []mesh.Mesh{{Name: "a"}}
	if kept, dropped := ex.Apply(in); dropped != 0 || len(kept) != 1 {
		t.Fatalf("nil filter dropped meshes")
	}
}

func TestExcludeBadRegexp(t *testing.T) {
	if _, err := NewExclude([]string{"re:("}); err == nil {
		t.Fatal("expected error for invalid regexp")
	}
}

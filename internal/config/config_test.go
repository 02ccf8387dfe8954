package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weld.json")
	src := `{
  "output_dir": "out",
  "previews": true,
  "exclude": ["glow"],
  "jobs": [
    {"name": "castle", "inputs": ["walls.obj", "/abs/roof.stl"]},
    {"inputs": ["tower.bmd"], "output": "tower.stl", "preview": "thumbs/tower.webp"}
  ]
}`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Resolve(Flags{Exclude: "aura,fx", Workers: 3}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cfg.BaseDir != dir {
		t.Errorf("BaseDir = %q, want config dir %q", cfg.BaseDir, dir)
	}
	out := filepath.Join(dir, "out")
	if cfg.OutputDir != out {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"glow", "aura", "fx"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.Workers != 3 || cfg.PreviewSize != 256 || cfg.Supersample != 2 || cfg.UpAxis != "y" {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	castle := cfg.Jobs[0]
	if !reflect.DeepEqual(castle.Inputs, []string{filepath.Join(dir, "walls.obj"), "/abs/roof.stl"}) {
		t.Errorf("castle inputs = %v", castle.Inputs)
	}
	if castle.Output != filepath.Join(out, "castle.obj") {
		t.Errorf("castle output = %q", castle.Output)
	}
	if castle.Preview != filepath.Join(out, "castle.webp") {
		t.Errorf("castle preview = %q", castle.Preview)
	}

	tower := cfg.Jobs[1]
	if tower.Name != "tower" || tower.Output != filepath.Join(out, "tower.stl") {
		t.Errorf("tower = %+v", tower)
	}
	if tower.Preview != filepath.Join(out, "thumbs", "tower.webp") {
		t.Errorf("tower preview = %q", tower.Preview)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDefaultJobName(t *testing.T) {
	cfg := Config{BaseDir: "/data", Jobs: []Job{{Inputs: []string{"a/b/part.obj"}}, {}}}
	if err := cfg.Resolve(Flags{}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Jobs[0].Name != "part_welded" {
		t.Errorf("name = %q", cfg.Jobs[0].Name)
	}
	if cfg.Jobs[1].Name != "job1" {
		t.Errorf("name = %q", cfg.Jobs[1].Name)
	}
	if cfg.Jobs[0].Preview != "" {
		t.Errorf("preview set without previews enabled: %q", cfg.Jobs[0].Preview)
	}
}

func TestResolveWorkingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	var cfg Config
	if err := cfg.Resolve(Flags{}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.BaseDir != dir || cfg.OutputDir != dir {
		t.Errorf("BaseDir = %q, OutputDir = %q, want %q", cfg.BaseDir, cfg.OutputDir, dir)
	}

	if err := os.Remove(dir); err != nil {
		t.Fatal(err)
	}
	cfg = Config{}
	if err := cfg.Resolve(Flags{}); err == nil {
		t.Errorf("Resolve in a removed directory set BaseDir = %q, want error", cfg.BaseDir)
	}
}

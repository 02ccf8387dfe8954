package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Job is one merge session: every input is welded into Output.
type Job struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs"`
	Output  string   `json:"output"`
	Preview string   `json:"preview,omitempty"`
}

// Config holds all configurable paths and weld/preview settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	OutputDir string `json:"output_dir"`
	Matcap    string `json:"matcap"`

	Jobs    []Job    `json:"jobs"`
	Exclude []string `json:"exclude"`

	// Preview settings
	Previews    bool   `json:"previews"`
	PreviewSize int    `json:"preview_size"`
	Supersample int    `json:"supersample"`
	UpAxis      string `json:"up_axis"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir   string
	OutputDir string
	Matcap    string
	Exclude   string // comma-separated
	UpAxis    string
	Preview   bool
	Workers   int
}

// Resolve applies CLI overrides, resolves relative paths against BaseDir
// and fills defaults. It fails only when BaseDir is unset and the working
// directory cannot be determined.
func (c *Config) Resolve(flags Flags) error {
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Matcap != "" {
		c.Matcap = flags.Matcap
	}
	if flags.Exclude != "" {
		c.Exclude = append(c.Exclude, strings.Split(flags.Exclude, ",")...)
	}
	if flags.UpAxis != "" {
		c.UpAxis = flags.UpAxis
	}
	if flags.Preview {
		c.Previews = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("config: base dir: %w", err)
		}
		c.BaseDir = wd
	}
	if c.OutputDir == "" {
		c.OutputDir = c.BaseDir
	} else {
		c.OutputDir = c.abs(c.BaseDir, c.OutputDir)
	}
	if c.Matcap != "" {
		c.Matcap = c.abs(c.BaseDir, c.Matcap)
	}

	for i := range c.Jobs {
		j := &c.Jobs[i]
		for k, in := range j.Inputs {
			j.Inputs[k] = c.abs(c.BaseDir, in)
		}
		if j.Name == "" {
			j.Name = defaultJobName(*j, i)
		}
		if j.Output == "" {
			j.Output = j.Name + ".obj"
		}
		j.Output = c.abs(c.OutputDir, j.Output)
		if j.Preview == "" && c.Previews {
			j.Preview = strings.TrimSuffix(j.Output, filepath.Ext(j.Output)) + ".webp"
		}
		if j.Preview != "" {
			j.Preview = c.abs(c.OutputDir, j.Preview)
		}
	}

	// Defaults for preview settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.UpAxis == "" {
		c.UpAxis = "y"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

func (c *Config) abs(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func defaultJobName(j Job, i int) string {
	if j.Output != "" {
		base := filepath.Base(j.Output)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	if len(j.Inputs) > 0 {
		base := filepath.Base(j.Inputs[0])
		return strings.TrimSuffix(base, filepath.Ext(base)) + "_welded"
	}
	return fmt.Sprintf("job%d", i)
}

package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"meshweld/internal/weld"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name     string     `json:"name"`
	Output   string     `json:"output"`
	Preview  string     `json:"preview,omitempty"`
	Inputs   int        `json:"inputs"`
	Meshes   int        `json:"meshes"`
	Excluded int        `json:"excluded_meshes"`
	Weld     weld.Stats `json:"weld"`
	Success  bool       `json:"success"`
	Error    string     `json:"error,omitempty"`
}

// WriteManifest writes a JSON summary of results to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:     r.Name,
			Output:   r.Output,
			Preview:  r.Preview,
			Inputs:   r.Inputs,
			Meshes:   r.Meshes,
			Excluded: r.Excluded,
			Weld:     r.Stats,
			Success:  r.Success,
			Error:    r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

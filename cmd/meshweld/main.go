package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"meshweld/internal/batch"
	"meshweld/internal/config"
	"meshweld/internal/filter"
	"meshweld/internal/preview"
	"meshweld/internal/weld"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON config listing weld jobs")
	outFile := flag.String("o", "", "Output mesh file for a single weld (.obj or .stl)")
	previewOut := flag.Bool("preview", false, "Also write a WebP preview next to each output")
	dataDir := flag.String("data", "", "Base directory for relative input paths")
	outputDir := flag.String("output", "", "Output directory for relative output paths")
	matcap := flag.String("matcap", "", "Matcap texture for previews (PNG, JPEG or TGA)")
	upAxis := flag.String("up", "", "Up axis of the input models for previews: y or z")
	exclude := flag.String("exclude", "", "Comma-separated mesh name patterns to skip (re: prefix for regexp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	quiet := flag.Bool("quiet", false, "Suppress progress output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  meshweld [flags] -o out.obj in1.obj [in2.stl ...]\n  meshweld [flags] -config weld.json\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Positional inputs form one extra job
	if flag.NArg() > 0 {
		if *outFile == "" {
			fmt.Fprintln(os.Stderr, "Error: -o is required when input files are given.")
			os.Exit(2)
		}
		inputs := make([]string, flag.NArg())
		for i, in := range flag.Args() {
			inputs[i] = absPath(in)
		}
		cfg.Jobs = append(cfg.Jobs, config.Job{Inputs: inputs, Output: absPath(*outFile)})
	}

	if len(cfg.Jobs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// CLI flags override config file
	err := cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		OutputDir: *outputDir,
		Matcap:    *matcap,
		Exclude:   *exclude,
		UpAxis:    *upAxis,
		Preview:   *previewOut,
		Workers:   *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ex, err := filter.NewExclude(cfg.Exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	batchCfg := batch.Config{
		Exclude:     ex,
		PreviewSize: cfg.PreviewSize,
		Supersample: cfg.Supersample,
		UpAxis:      cfg.UpAxis,
		Workers:     cfg.Workers,
	}
	if !*quiet {
		batchCfg.Progress = os.Stdout
	}
	if cfg.Matcap != "" {
		batchCfg.Matcap, err = preview.LoadMatcap(cfg.Matcap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using default shading)\n", err)
		}
	}

	var log io.Writer = os.Stdout
	if *quiet {
		log = io.Discard
	}

	fmt.Fprintf(log, "Mesh welder: grid cell %.2f units\n", 1.0/weld.GridScale)
	fmt.Fprintf(log, "Jobs: %d, Workers: %d\n", len(cfg.Jobs), cfg.Workers)
	fmt.Fprintf(log, "Output: %s\n", cfg.OutputDir)
	fmt.Fprintln(log, "------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batchCfg, cfg.Jobs)
	elapsed := time.Since(start)

	fmt.Fprintln(log, "------------------------------------------------------------")
	fmt.Fprintf(log, "Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			s := r.Stats
			fmt.Fprintf(log, "  %s: %d meshes -> %d vertices, %d triangles (%d degenerate dropped)\n",
				r.Name, r.Meshes-r.Excluded, s.Vertices, s.Kept, s.Degenerate)
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Fprintf(log, "Welded: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest for config-driven runs
	if *configFile != "" {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Fprintf(log, "Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// absPath anchors command-line paths to the working directory so that
// -data only applies to config-file paths.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"meshweld/internal/config"
	"meshweld/internal/filter"
	"meshweld/internal/mesh"
	"meshweld/internal/meshio"
	"meshweld/internal/preview"
	"meshweld/internal/weld"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Exclude     *filter.Exclude
	Matcap      *image.NRGBA
	PreviewSize int
	Supersample int
	UpAxis      string
	Workers     int
	Progress    io.Writer // nil disables progress lines
}

// Result holds the outcome of one weld job.
type Result struct {
	Name     string
	Output   string
	Preview  string
	Inputs   int
	Meshes   int
	Excluded int
	Stats    weld.Stats
	Success  bool
	Error    string
	Err      error
}

func (r Result) fail(err error) Result {
	r.Success = false
	r.Err = err
	r.Error = err.Error()
	return r
}

// Run processes all jobs using a worker pool. Each job owns its welder, so
// jobs never share weld state. Jobs not yet started when ctx is done report
// ctx.Err().
func Run(ctx context.Context, cfg Config, jobs []config.Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f jobs/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
send:
	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break send
		case jobChan <- i:
			sent++
		}
	}
	close(jobChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Name: jobs[i].Name, Output: jobs[i].Output}.fail(ctx.Err())
	}

	return results
}

func processJob(cfg Config, job config.Job) Result {
	res := Result{
		Name:    job.Name,
		Output:  job.Output,
		Preview: job.Preview,
		Inputs:  len(job.Inputs),
	}

	if len(job.Inputs) == 0 {
		return res.fail(fmt.Errorf("batch: job %q has no inputs", job.Name))
	}

	var all []mesh.Mesh
	for _, in := range job.Inputs {
		meshes, err := meshio.Import(in)
		if err != nil {
			return res.fail(err)
		}
		all = append(all, meshes...)
	}
	res.Meshes = len(all)

	all, res.Excluded = cfg.Exclude.Apply(all)
	if len(all) == 0 {
		return res.fail(fmt.Errorf("batch: job %q: every mesh excluded", job.Name))
	}

	welded, stats := weld.Weld(all)
	welded.Name = job.Name
	res.Stats = stats

	if err := meshio.Export(job.Output, welded); err != nil {
		return res.fail(err)
	}

	if job.Preview != "" {
		img := preview.Render(welded, preview.Options{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			UpAxis:      cfg.UpAxis,
			Matcap:      cfg.Matcap,
		})
		if err := preview.WriteWebP(job.Preview, img); err != nil {
			return res.fail(err)
		}
	}

	res.Success = true
	return res
}

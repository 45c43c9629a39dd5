// Package engine runs batches of conversions on a bounded worker pool.
package engine

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/config"
	"github.com/ivlev/alive2json/internal/loader"
	"github.com/ivlev/alive2json/internal/manifest"
	"github.com/ivlev/alive2json/internal/output"
	"github.com/ivlev/alive2json/internal/store"
	"github.com/ivlev/alive2json/internal/system"
	"golang.org/x/sync/errgroup"
)

// Render converts source and encodes the result for emit.
func Render(source []byte, opts loader.Options, emit output.Emit) ([]byte, error) {
	switch emit {
	case output.EmitNative:
		doc, err := loader.Native(source, opts)
		if err != nil {
			return nil, err
		}
		return doc.Marshal()
	case output.EmitJSON:
		cfg, err := loader.Convert(source, opts)
		if err != nil {
			return nil, err
		}
		return loader.RenderJSON(cfg)
	default:
		module, err := loader.GenerateModule(source, opts)
		if err != nil {
			return nil, err
		}
		return []byte(module), nil
	}
}

// Result reports the outcome of one job.
type Result struct {
	Job      manifest.Job
	Output   string
	Cached   bool
	Err      error
	Duration time.Duration
}

type Project struct {
	Config *config.Config
	Emit   output.Emit
	Stor   store.ConversionStor
	Writer output.Writer
	// OnUnsupported is handed to the Lottie adapter for every job.
	OnUnsupported func(error)
}

func NewProject(cfg *config.Config, stor store.ConversionStor, w output.Writer, emit output.Emit) *Project {
	return &Project{
		Config: cfg,
		Emit:   emit,
		Stor:   stor,
		Writer: w,
	}
}

// Run converts every job and writes its output. A failing job does not stop the
// others; the returned error summarizes the failures. Results keep job order.
func (p *Project) Run(ctx context.Context, jobs []manifest.Job) ([]Result, error) {
	startTime := time.Now()
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	log.Infof("[*] Converting %d document(s) with %d worker(s)", len(jobs), workers)

	var done int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Job: job, Err: err}
				return err
			}
			results[i] = p.convert(gctx, job)
			n := atomic.AddInt32(&done, 1)
			if results[i].Err != nil {
				log.WithError(results[i].Err).Errorf("[!] %s", job.Input)
				return nil
			}
			log.Infof("[>] Ready: %d/%d %s", n, len(jobs), results[i].Output)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	report := p.report(results, time.Since(startTime))
	if p.Config.ShowStats {
		fmt.Print(report)
	}

	if report.Failed > 0 {
		return results, fmt.Errorf("%d of %d conversions failed", report.Failed, len(jobs))
	}
	return results, nil
}

func (p *Project) convert(ctx context.Context, job manifest.Job) Result {
	start := time.Now()
	res := Result{Job: job, Output: p.Emit.Path(job.Output)}

	source, err := os.ReadFile(job.Input)
	if err != nil {
		res.Err = err
		return res
	}

	format, ok := loader.ParseFormat(job.Format)
	if !ok {
		log.WithField("format", job.Format).Warnf("[!] %s: unknown format, using alive", job.Input)
	}
	opts := loader.Options{
		Format:               format,
		SkipUnresolvedLayers: job.SkipUnresolved || p.Config.SkipUnresolvedLayers,
		OnUnsupported:        p.OnUnsupported,
	}

	data, cached, err := CachedRender(p.Stor, source, opts, p.Emit)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", job.Input, err)
		return res
	}
	res.Cached = cached

	if err := p.Writer.Write(ctx, res.Output, data); err != nil {
		res.Err = err
		return res
	}

	res.Duration = time.Since(start)
	return res
}

// CachedRender is Render backed by stor. Native output is never cached; a nil stor
// disables caching. cached reports whether the data came from stor.
func CachedRender(stor store.ConversionStor, source []byte, opts loader.Options, emit output.Emit) (data []byte, cached bool, err error) {
	if stor == nil || emit == output.EmitNative {
		data, err = Render(source, opts, emit)
		return data, false, err
	}

	digest := store.Digest(source, opts.Format.String()+"/"+string(emit), opts.SkipUnresolvedLayers)
	if c, err := stor.GetConversionByDigest(digest); err == nil {
		return []byte(c.Module), true, nil
	}

	data, err = Render(source, opts, emit)
	if err != nil {
		return nil, false, err
	}
	if _, err := stor.AddConversion(&store.Conversion{
		Digest: digest,
		Format: opts.Format.String(),
		Module: string(data),
	}); err != nil {
		log.WithError(err).Warn("[!] could not cache conversion")
	}
	return data, false, nil
}

func (p *Project) report(results []Result, elapsed time.Duration) system.Report {
	r := system.Report{Build: p.Config.BuildVersion, Jobs: len(results), Elapsed: elapsed}
	for _, res := range results {
		switch {
		case res.Err != nil:
			r.Failed++
		case res.Cached:
			r.Cached++
		default:
			r.Converted++
		}
	}
	if p.Config.ShowStats {
		usage, err := system.CurrentUsage()
		if err != nil {
			log.WithError(err).Debug("process stats unavailable")
		}
		r.Usage = usage
	}
	return r
}

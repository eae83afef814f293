// Package walker implements C6, the parallel driver: file discovery plus
// a bounded worker pool that analyzes files concurrently, feeds an
// Accumulator, and supports cooperative cancellation. Grounded on the
// teacher's scanner.Engine.scanFiles / worker channel fan-out.
package walker

import (
	"context"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ericfisherdev/rslines/internal/accumulate"
	"github.com/ericfisherdev/rslines/internal/analyzer"
	"github.com/ericfisherdev/rslines/internal/model"
)

// progressInterval mirrors the teacher's ProgressUpdateInterval: the
// callback is invoked every N completed files, not on every single one.
const progressInterval = 25

// Driver coordinates the worker pool.
type Driver struct {
	Analyzer    *analyzer.Analyzer
	Accumulator accumulate.Accumulator
	Workers     int
	Progress    func(done, total int)
	Log         *logrus.Logger
}

// FileError pairs a path with the *analyzer.Error that occurred on it.
type FileError struct {
	Path string
	Err  error
}

// Run analyzes every file, feeding each result into d.Accumulator. It
// returns the non-fatal per-file errors collected along the way; a
// non-nil fatalErr means a Kind.IsFatal() error occurred (from the
// accumulator, typically a spill write failure) and the run should be
// considered aborted even though some files may have been processed.
// Cancellation via ctx is checked between files, never mid-parse.
func (d *Driver) Run(ctx context.Context, files []string) (fileErrs []FileError, fatalErr error) {
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	filesChan := make(chan string, workers*2)
	type result struct {
		path  string
		stats model.FileStats
		err   error
	}
	resultsChan := make(chan result, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range filesChan {
				select {
				case <-ctx.Done():
					resultsChan <- result{path: path, err: ctx.Err()}
					continue
				default:
				}
				stats, err := d.Analyzer.AnalyzeFile(path)
				resultsChan <- result{path: path, stats: stats, err: err}
			}
		}()
	}

	go func() {
		defer close(filesChan)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case filesChan <- f:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	done := 0
	total := len(files)
	for r := range resultsChan {
		done++
		if d.Progress != nil && (done%progressInterval == 0 || done == total) {
			d.Progress(done, total)
		}

		if r.err != nil {
			if kind, ok := analyzer.KindOf(r.err); ok && kind == analyzer.ParseWarnings {
				// degraded-but-usable: fold the stats in and still report the warning.
				if addErr := d.Accumulator.AddFile(r.stats); addErr != nil {
					fatalErr = &analyzer.Error{Kind: analyzer.SpillError, Path: r.path, Err: addErr}
					continue
				}
			}
			fileErrs = append(fileErrs, FileError{Path: r.path, Err: r.err})
			if d.Log != nil {
				d.Log.WithError(r.err).WithField("file", r.path).Warn("file analysis error")
			}
			continue
		}

		if addErr := d.Accumulator.AddFile(r.stats); addErr != nil {
			fatalErr = &analyzer.Error{Kind: analyzer.SpillError, Path: r.path, Err: addErr}
		}
	}

	if err := d.Accumulator.Flush(); err != nil && fatalErr == nil {
		fatalErr = &analyzer.Error{Kind: analyzer.SpillError, Err: err}
	}

	return fileErrs, fatalErr
}

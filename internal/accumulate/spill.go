package accumulate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/ericfisherdev/rslines/internal/model"
)

// Spill accumulates the running Summary in memory (it is tiny: a handful
// of ints) but writes each FileStats to an append-only, one-record-per-
// line JSON file, bounding memory use on very large trees. The file is
// self-delimiting (newline-terminated JSON objects) so IterFiles can
// stream it back without loading the whole tree at once.
type Spill struct {
	mu      sync.Mutex
	summary model.Summary

	file   *os.File
	writer *bufio.Writer
	enc    *json.Encoder
}

// NewSpill creates a temp file under dir (os.TempDir() if dir is empty)
// to hold the per-file records. The caller should arrange for
// os.Remove on the returned path once Flush/IterFiles are done with it,
// or leave it to the OS's temp cleanup.
func NewSpill(dir string) (*Spill, error) {
	f, err := os.CreateTemp(dir, "rslines-spill-*.jsonl")
	if err != nil {
		return nil, fmt.Errorf("accumulate: create spill file: %w", err)
	}
	w := bufio.NewWriter(f)
	return &Spill{file: f, writer: w, enc: json.NewEncoder(w)}, nil
}

func (s *Spill) Path() string { return s.file.Name() }

func (s *Spill) AddFile(fs model.FileStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary.AddFile(fs)
	if err := s.enc.Encode(fs); err != nil {
		return fmt.Errorf("accumulate: spill write: %w", err)
	}
	return nil
}

func (s *Spill) Summary() model.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// IterFiles flushes pending writes, then streams every record back in
// append order (the order AddFile was called in). It re-opens the spill
// file for reading so concurrent writers (there are none once the scan
// is complete) are never in play during the read pass. Sorting into the
// final deterministic path order is the Report Builder's job.
func (s *Spill) IterFiles(fn func(model.FileStats) error) error {
	if err := s.Flush(); err != nil {
		return err
	}

	r, err := os.Open(s.file.Name())
	if err != nil {
		return fmt.Errorf("accumulate: reopen spill file: %w", err)
	}
	defer r.Close()

	dec := json.NewDecoder(bufio.NewReader(r))
	for dec.More() {
		var fs model.FileStats
		if err := dec.Decode(&fs); err != nil {
			return fmt.Errorf("accumulate: spill read: %w", err)
		}
		if err := fn(fs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Spill) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("accumulate: spill flush: %w", err)
	}
	return nil
}

// Close flushes and removes the underlying spill file.
func (s *Spill) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if err := s.file.Close(); err != nil {
		return err
	}
	return os.Remove(s.file.Name())
}

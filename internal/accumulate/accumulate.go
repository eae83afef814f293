// Package accumulate implements C5: a small polymorphic accumulator over
// {AddFile, Summary, IterFiles, Flush}, backed either by an in-memory
// ordered slice or by an append-only spill-to-disk file. Adapted from
// the aggregation shape in the teacher's Engine.generateSummary,
// generalized into a standalone interface with Go, not generics,
// supplying the polymorphism (see DESIGN.md Open Question decisions).
package accumulate

import "github.com/ericfisherdev/rslines/internal/model"

// Accumulator collects per-file results and produces the run summary.
// Implementations must be safe for concurrent AddFile calls; Summary,
// IterFiles, and Flush are only called after the scan completes.
type Accumulator interface {
	AddFile(model.FileStats) error
	Summary() model.Summary
	IterFiles(func(model.FileStats) error) error
	Flush() error
}

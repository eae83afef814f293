// Package report implements C7: composing the run's Accumulator into the
// final Report, with files in deterministic order. Grounded on the
// composition idiom of the teacher's models.NewReport, trimmed to this
// project's simpler Summary/FileStats shape (no violation statistics).
package report

import (
	"sort"

	"github.com/ericfisherdev/rslines/internal/accumulate"
	"github.com/ericfisherdev/rslines/internal/model"
)

// Build drains acc into a Report, sorting files into the lexicographic
// byte-wise path order required by 4.6/4.7 regardless of the append or
// completion order the accumulator received them in.
func Build(acc accumulate.Accumulator) (model.Report, error) {
	r := model.Report{Summary: acc.Summary()}
	err := acc.IterFiles(func(fs model.FileStats) error {
		r.Files = append(r.Files, fs)
		return nil
	})
	if err != nil {
		return r, err
	}
	sort.Slice(r.Files, func(i, j int) bool { return r.Files[i].Path < r.Files[j].Path })
	return r, nil
}

package analyzer

import (
	"os"
	"unicode/utf8"

	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

// Analyzer runs the per-file pipeline for C4: read, size-guard, parse,
// classify, fold test regions, produce one FileStats.
type Analyzer struct {
	MaxFileSize int64 // bytes; 0 means unbounded
	cache       *ParseCache
}

func New(maxFileSize int64) *Analyzer {
	return &Analyzer{MaxFileSize: maxFileSize, cache: NewParseCache()}
}

// AnalyzeFile reads path from disk and returns its FileStats. A non-nil
// error is always an *Error with a Kind from the taxonomy; ParseWarnings
// is returned alongside a best-effort FileStats (not nil) since the
// fallback classifier still produces usable counts.
func (a *Analyzer) AnalyzeFile(path string) (model.FileStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FileStats{}, newError(IoError, path, err)
	}
	return a.AnalyzeBytes(path, data)
}

// AnalyzeBytes runs the pipeline over an in-memory buffer, letting
// callers (and tests) bypass the filesystem.
func (a *Analyzer) AnalyzeBytes(path string, data []byte) (model.FileStats, error) {
	if a.MaxFileSize > 0 && int64(len(data)) > a.MaxFileSize {
		return model.FileStats{}, newError(TooLarge, path, errTooLarge(len(data), a.MaxFileSize))
	}
	if !utf8.Valid(data) {
		return model.FileStats{}, newError(DecodeError, path, errNotUTF8)
	}

	data = stripBOM(data)

	idx := lineindex.Build(data)
	tree, degraded, err := a.cache.Parse(data)
	if err != nil {
		return model.FileStats{}, newError(DecodeError, path, err)
	}

	cats := tree.Classify(idx)
	regions := tree.TestRegions(idx)

	stats := model.FileStats{Path: path}
	for line := 1; line <= len(cats); line++ {
		ctx := model.Production
		if inAnyRegion(regions, line) {
			ctx = model.Test
		}
		stats.Record(cats[line-1], ctx)
	}

	if degraded {
		return stats, newError(ParseWarnings, path, errDegraded)
	}
	return stats, nil
}

// stripBOM drops a leading UTF-8 byte-order mark. It is ignored for
// classification purposes but the remaining bytes keep their relative
// offsets (the line index is built from the stripped view, so the BOM
// never shows up as a token of its own).
func stripBOM(data []byte) []byte {
	const bom0, bom1, bom2 = 0xEF, 0xBB, 0xBF
	if len(data) >= 3 && data[0] == bom0 && data[1] == bom1 && data[2] == bom2 {
		return data[3:]
	}
	return data
}

func inAnyRegion(regions []model.TestRegion, line int) bool {
	for _, r := range regions {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// Package lineindex maps byte offsets in a source buffer to 1-based
// physical line numbers in O(log n) time after an O(n) build.
package lineindex

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidOffset is returned by TryLineOf for an offset past end of file.
var ErrInvalidOffset = errors.New("lineindex: invalid offset")

// Index is a prefix array of newline byte offsets for one source buffer.
type Index struct {
	newlines []int // byte offset of each '\n', ascending
	size     int   // total buffer length
}

// Build scans src once and records every '\n' offset. A trailing '\r'
// immediately before '\n' is left to the caller to strip when extracting
// line text; the index only tracks line boundaries, not content.
func Build(src []byte) *Index {
	idx := &Index{size: len(src)}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

// LineCount returns the number of physical lines. A buffer with no
// trailing newline still counts its last partial line; an empty buffer
// has zero lines.
func (idx *Index) LineCount() int {
	if idx.size == 0 {
		return 0
	}
	n := len(idx.newlines)
	if n > 0 && idx.newlines[n-1] == idx.size-1 {
		return n
	}
	return n + 1
}

// LineOf returns the 1-based physical line number containing byte offset.
// The caller is expected to supply an offset known to be in range (e.g.
// one derived from a parse tree over the same buffer); TryLineOf is the
// checked counterpart for untrusted offsets.
func (idx *Index) LineOf(offset int) int {
	// number of newlines strictly before offset, plus one.
	n := sort.Search(len(idx.newlines), func(i int) bool {
		return idx.newlines[i] >= offset
	})
	return n + 1
}

// TryLineOf is LineOf's checked counterpart, failing with ErrInvalidOffset
// for an offset at or past end of file (4.1's documented failure mode).
func (idx *Index) TryLineOf(offset int) (int, error) {
	if offset < 0 || offset >= idx.size {
		return 0, fmt.Errorf("%w: offset %d, size %d", ErrInvalidOffset, offset, idx.size)
	}
	return idx.LineOf(offset), nil
}

// LineBounds returns the half-open byte range [start, end) of the given
// 1-based physical line, end exclusive of its terminating '\n' if any.
func (idx *Index) LineBounds(line int) (start, end int) {
	if line <= 1 {
		start = 0
	} else {
		start = idx.newlines[line-2] + 1
	}
	if line-1 < len(idx.newlines) {
		end = idx.newlines[line-1]
	} else {
		end = idx.size
	}
	return start, end
}

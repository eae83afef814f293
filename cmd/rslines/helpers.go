package main

import (
	"os"

	"github.com/ericfisherdev/rslines/internal/accumulate"
)

// accumulateCloser lets main defer a uniform Close() regardless of which
// backend was selected; the in-memory backend's Close is a no-op.
type accumulateCloser interface {
	accumulate.Accumulator
	Close() error
}

type noopCloser struct{ accumulate.Accumulator }

func (noopCloser) Close() error { return nil }

// isTerminal reports whether f looks like an interactive terminal,
// using the file mode's character-device bit rather than pulling in an
// extra terminal-detection dependency for this one check.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

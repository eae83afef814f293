// Package analyzer implements C4, the per-file pipeline: read the file,
// enforce the size cap, parse it, classify every line, and fold test
// regions in to produce one FileStats.
package analyzer

import (
	"errors"
	"fmt"
)

// Kind distinguishes the error taxonomy the rest of the pipeline reacts
// to. Per-file errors (IoError, TooLarge, DecodeError, ParseWarnings)
// are non-fatal: the driver records them and continues with other
// files. SpillError and FatalConfigError abort the whole run.
type Kind int

const (
	IoError Kind = iota
	TooLarge
	DecodeError
	ParseWarnings
	SpillError
	FatalConfigError
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "io-error"
	case TooLarge:
		return "too-large"
	case DecodeError:
		return "decode-error"
	case ParseWarnings:
		return "parse-warnings"
	case SpillError:
		return "spill-error"
	case FatalConfigError:
		return "fatal-config-error"
	default:
		return "unknown-error"
	}
}

// Error wraps an underlying cause with the Kind the rest of the system
// dispatches on, following the teacher's plain fmt.Errorf %w wrapping
// idiom rather than a third-party error-chain library.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// IsFatal reports whether an error of this kind must abort the whole run.
func (k Kind) IsFatal() bool {
	return k == SpillError || k == FatalConfigError
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, returning ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

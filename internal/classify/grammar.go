package classify

import (
	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

// Tree is a parsed representation of one source file capable of
// answering the two questions the rest of the pipeline needs: the
// per-line category and the test-gated line ranges. Both the
// tree-sitter-backed grammar and the regex fallback satisfy this.
type Tree interface {
	// Classify returns one LineCategory per physical line, 1-indexed
	// (index 0 is line 1), covering every line idx knows about.
	Classify(idx *lineindex.Index) []model.LineCategory
	// TestRegions returns the test-gated line ranges found in the tree.
	TestRegions(idx *lineindex.Index) []model.TestRegion
	// Degraded reports whether this tree came from a fallback path
	// rather than a full grammar parse (surfaces as a ParseWarnings
	// condition upstream).
	Degraded() bool
}

// Grammar parses a source buffer into a Tree. Only a Rust grammar ships
// today; the seam exists so a second language could register here
// without touching the rest of the pipeline.
type Grammar interface {
	Name() string
	Parse(src []byte) (Tree, error)
}

// extraTestAttrs holds attribute paths an operator has explicitly
// allowlisted as test-gating beyond the literal `test`/`cfg(test)`/
// `cfg_attr(test, ...)` forms (spec.md §9's "attribute recognition
// breadth" open question: e.g. `tokio::test`, `rstest`). It is set once
// at startup via SetExtraTestAttributes, before any file is parsed, and
// is read-only for the remainder of the run, so concurrent per-file
// workers never race on it.
var extraTestAttrs = map[string]struct{}{}

// SetExtraTestAttributes replaces the allowlist of additional bare
// attribute paths recognized as test-gating. Extensions are additive
// only: they can mark more lines Test, never reclassify a line the
// literal rules already marked Test back to Production.
func SetExtraTestAttributes(paths []string) {
	m := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		m[p] = struct{}{}
	}
	extraTestAttrs = m
}

func isExtraTestAttr(path string) bool {
	_, ok := extraTestAttrs[path]
	return ok
}

var registry = map[string]Grammar{}

// Register adds a grammar under its own Name(). Later registrations for
// the same name replace earlier ones, which is convenient for tests that
// stub a grammar.
func Register(g Grammar) {
	registry[g.Name()] = g
}

// Lookup returns a previously registered grammar by name.
func Lookup(name string) (Grammar, bool) {
	g, ok := registry[name]
	return g, ok
}

func init() {
	Register(NewRustGrammar())
}

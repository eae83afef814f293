package classify

import "fmt"

// ParseRust parses src with the registered "rust" grammar, downgrading to
// the regex fallback if the grammar errors or panics (a malformed tree-
// sitter build, or a source file the grammar's error-recovery can't
// make sense of at all). The bool return reports whether the fallback
// was used, which the caller surfaces as a ParseWarnings condition.
func ParseRust(src []byte) (tree Tree, degraded bool, err error) {
	g, ok := Lookup("rust")
	if !ok {
		return nil, false, fmt.Errorf("classify: no rust grammar registered")
	}
	tree, err = safeParse(g, src)
	if err != nil {
		fb := NewFallbackGrammar()
		tree, err = fb.Parse(src)
		return tree, true, err
	}
	return tree, false, nil
}

// safeParse guards against a panic inside the cgo-backed tree-sitter
// runtime (e.g. a corrupt grammar binary) turning into a process crash;
// it is converted into an ordinary error so the caller can fall back.
func safeParse(g Grammar, src []byte) (t Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classify: grammar %s panicked: %v", g.Name(), r)
		}
	}()
	return g.Parse(src)
}

package classify

import (
	"regexp"
	"strings"

	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

// FallbackGrammar classifies lines with a byte-level scanner instead of a
// real parse tree. It is used when the tree-sitter grammar fails to
// produce a tree (a malformed or partial source file) so the pipeline
// still returns a best-effort result rather than erroring the whole
// file out, matching the classifier's "never fail on syntactically
// invalid input" requirement. Results from this path are marked
// Degraded and surface as a ParseWarnings condition upstream.
type FallbackGrammar struct{}

func NewFallbackGrammar() *FallbackGrammar { return &FallbackGrammar{} }

func (FallbackGrammar) Name() string { return "rust-fallback" }

func (FallbackGrammar) Parse(src []byte) (Tree, error) {
	return &fallbackTree{src: src}, nil
}

type scanState int

const (
	stNormal scanState = iota
	stLineComment
	stBlockComment
	stString
	stRawString
)

type fallbackTree struct{ src []byte }

func (t *fallbackTree) Degraded() bool { return true }

func (t *fallbackTree) Classify(idx *lineindex.Index) []model.LineCategory {
	n := idx.LineCount()
	cats := make([]model.LineCategory, n)
	state := stNormal
	rawHashes := 0
	line := 1
	sawNonSpace := false
	lineHasCode := false
	lineHasDoc := false
	lineHasComment := false
	isDocLineComment := false
	isDocBlockComment := false

	flush := func() {
		if line > n {
			return
		}
		switch {
		case lineHasCode:
			cats[line-1] = model.Code
		case lineHasDoc:
			cats[line-1] = model.Rustdoc
		case lineHasComment:
			cats[line-1] = model.Comment
		default:
			cats[line-1] = model.Blank
		}
		lineHasCode, lineHasDoc, lineHasComment, sawNonSpace = false, false, false, false
	}

	src := t.src
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			flush()
			line++
			if state == stLineComment {
				state = stNormal
			}
			if state == stBlockComment {
				if isDocBlockComment {
					lineHasDoc = true
				} else {
					lineHasComment = true
				}
			}
			continue
		}
		switch state {
		case stNormal:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				isDocLineComment = strings.HasPrefix(string(src[i:minInt(i+4, len(src))]), "///") && !strings.HasPrefix(string(src[i:minInt(i+5, len(src))]), "////")
				if strings.HasPrefix(string(src[i:minInt(i+3, len(src))]), "//!") {
					isDocLineComment = true
				}
				state = stLineComment
				if isDocLineComment {
					lineHasDoc = true
				} else {
					lineHasComment = true
				}
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				isDocBlockComment = strings.HasPrefix(string(src[i:minInt(i+3, len(src))]), "/*!") ||
					(strings.HasPrefix(string(src[i:minInt(i+3, len(src))]), "/**") && !strings.HasPrefix(string(src[i:minInt(i+4, len(src))]), "/***"))
				state = stBlockComment
				if isDocBlockComment {
					lineHasDoc = true
				} else {
					lineHasComment = true
				}
				i++
			case c == '"':
				state = stString
				sawNonSpace = true
				lineHasCode = true
			case c == 'r' && i+1 < len(src) && (src[i+1] == '"' || src[i+1] == '#'):
				j := i + 1
				hashes := 0
				for j < len(src) && src[j] == '#' {
					hashes++
					j++
				}
				if j < len(src) && src[j] == '"' {
					state = stRawString
					rawHashes = hashes
					i = j
				}
				sawNonSpace = true
				lineHasCode = true
			case c == ' ' || c == '\t' || c == '\r':
				// whitespace, no category change
			default:
				sawNonSpace = true
				lineHasCode = true
			}
		case stLineComment:
			// consumed until '\n', handled above
		case stBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stNormal
				i++
			}
		case stString:
			if c == '\\' {
				i++
			} else if c == '"' {
				state = stNormal
			}
		case stRawString:
			if c == '"' {
				matched := true
				for k := 0; k < rawHashes; k++ {
					if i+1+k >= len(src) || src[i+1+k] != '#' {
						matched = false
						break
					}
				}
				if matched {
					state = stNormal
					i += rawHashes
				}
			}
		}
	}
	flush()
	_ = sawNonSpace
	return cats
}

var (
	testAttrRe    = regexp.MustCompile(`^\s*#!?\[\s*test\s*\]`)
	cfgTestAttrRe = regexp.MustCompile(`^\s*#!?\[\s*cfg\(\s*test\s*\)\s*\]`)
	cfgAttrTestRe = regexp.MustCompile(`^\s*#!?\[\s*cfg_attr\(\s*test\s*,`)
	fnOrModRe     = regexp.MustCompile(`^\s*(pub(\([^)]*\))?\s+)?(async\s+)?(unsafe\s+)?(fn|mod)\s`)
	bareAttrRe    = regexp.MustCompile(`^\s*#!?\[\s*([a-zA-Z0-9_:]+)`)
)

// TestRegions approximates C3 by scanning line-by-line for a test
// attribute, skipping any blank lines and further attribute lines after
// it, then tracking brace depth from the next line to find the item's
// extent. The kind of that item is not checked.
func (t *fallbackTree) TestRegions(idx *lineindex.Index) []model.TestRegion {
	lines := strings.Split(string(t.src), "\n")
	var regions []model.TestRegion
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		matchesExtra := false
		if m := bareAttrRe.FindStringSubmatch(l); m != nil {
			matchesExtra = isExtraTestAttr(m[1])
		}
		if !testAttrRe.MatchString(l) && !cfgTestAttrRe.MatchString(l) && !cfgAttrTestRe.MatchString(l) && !matchesExtra {
			continue
		}
		start := i + 1
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		for j < len(lines) && !fnOrModRe.MatchString(lines[j]) && strings.HasPrefix(strings.TrimSpace(lines[j]), "#") {
			j++
		}
		if j >= len(lines) {
			continue
		}
		end := findBlockEnd(lines, j)
		regions = append(regions, model.TestRegion{StartLine: start, EndLine: end + 2})
	}
	return regions
}

// findBlockEnd returns the 0-based line index where the brace block that
// opens on or after startLine closes, by simple depth counting (does not
// attempt to ignore braces inside strings/comments — a known
// approximation of the degraded fallback path).
func findBlockEnd(lines []string, startLine int) int {
	depth := 0
	seenOpen := false
	for i := startLine; i < len(lines); i++ {
		for _, c := range lines[i] {
			if c == '{' {
				depth++
				seenOpen = true
			} else if c == '}' {
				depth--
			}
		}
		if seenOpen && depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

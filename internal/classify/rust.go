package classify

import (
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust"

	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

// node kinds from the tree-sitter-rust grammar relevant to classification
// and test-region detection, named once here so the leaf classifier and
// the test-region walk share the same spelling.
const (
	kindLineComment        = "line_comment"
	kindBlockComment       = "block_comment"
	kindAttributeItem      = "attribute_item"
	kindInnerAttributeItem = "inner_attribute_item"
	kindFunctionItem       = "function_item"
	kindModItem            = "mod_item"
	kindStructItem         = "struct_item"
	kindEnumItem           = "enum_item"
	kindUnionItem          = "union_item"
	kindImplItem           = "impl_item"
	kindConstItem          = "const_item"
	kindStaticItem         = "static_item"
	kindTraitItem          = "trait_item"
	kindTypeItem           = "type_item"
	kindUseDeclaration     = "use_declaration"
	kindForeignModItem     = "foreign_mod_item"
	kindMacroInvocation    = "macro_invocation"
	kindMacroDefinition    = "macro_definition"
)

// testGatableItemKinds lists every tree-sitter-rust item kind eligible for
// cfg(test)/#[test]-style gating, per 4.3's "any item (module, function,
// impl block, const, struct, enum, trait, use, etc.)" rule.
var testGatableItemKinds = map[string]bool{
	kindFunctionItem:    true,
	kindModItem:         true,
	kindStructItem:      true,
	kindEnumItem:        true,
	kindUnionItem:       true,
	kindImplItem:        true,
	kindConstItem:       true,
	kindStaticItem:      true,
	kindTraitItem:       true,
	kindTypeItem:        true,
	kindUseDeclaration:  true,
	kindForeignModItem:  true,
	kindMacroInvocation: true,
	kindMacroDefinition: true,
}

// RustGrammar parses Rust source with the real tree-sitter-rust grammar,
// producing a lossless concrete syntax tree: every byte is covered by
// exactly one leaf token or by implicit whitespace between tokens.
type RustGrammar struct {
	mu   sync.Mutex
	lang *tree_sitter.Language
}

// NewRustGrammar builds the grammar once; the underlying tree-sitter
// Language value is safe to share across parses but not across
// concurrent Parser.Parse calls on the same *Parser, so each Parse call
// below takes its own short-lived Parser.
func NewRustGrammar() *RustGrammar {
	return &RustGrammar{
		lang: tree_sitter.NewLanguage(tree_sitter_rust.Language()),
	}
}

func (g *RustGrammar) Name() string { return "rust" }

func (g *RustGrammar) Parse(src []byte) (Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(g.lang); err != nil {
		return nil, err
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, errParseFailed
	}
	// The tree is not closed here: rustTree keeps its root node, which
	// TestRegions walks after Parse has returned.

	root := tree.RootNode()
	leaves := collectLeaves(root)
	return &rustTree{src: src, leaves: leaves, root: root}, nil
}

type leafToken struct {
	start, end int
	isComment  bool
}

// collectLeaves walks the tree with an explicit cursor stack (no Go call
// recursion, per the project's "avoid deep recursion on adversarial
// nesting" design decision) and records every leaf token's byte span.
func collectLeaves(root *tree_sitter.Node) []leafToken {
	var leaves []leafToken
	type frame struct{ n *tree_sitter.Node }
	stack := []frame{{root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.n
		childCount := int(n.ChildCount())
		if childCount == 0 {
			kind := n.Kind()
			isComment := kind == kindLineComment || kind == kindBlockComment
			leaves = append(leaves, leafToken{
				start:     int(n.StartByte()),
				end:       int(n.EndByte()),
				isComment: isComment,
			})
			continue
		}
		for i := childCount - 1; i >= 0; i-- {
			child := n.Child(uint(i))
			if child != nil {
				stack = append(stack, frame{child})
			}
		}
	}
	return leaves
}

type rustTree struct {
	src    []byte
	leaves []leafToken
	root   *tree_sitter.Node
}

func (t *rustTree) Degraded() bool { return false }

func (t *rustTree) Classify(idx *lineindex.Index) []model.LineCategory {
	n := idx.LineCount()
	cats := make([]model.LineCategory, n)

	for _, leaf := range t.leaves {
		cat := model.Code
		if leaf.isComment {
			text := t.src[leaf.start:leaf.end]
			if isDocComment(text) {
				cat = model.Rustdoc
			} else {
				cat = model.Comment
			}
		} else if isBlankSpan(t.src[leaf.start:leaf.end]) {
			continue
		}
		startLine := idx.LineOf(leaf.start)
		endLine := idx.LineOf(maxInt(leaf.start, leaf.end-1))
		for line := startLine; line <= endLine && line <= n; line++ {
			if cat > cats[line-1] {
				cats[line-1] = cat
			}
		}
	}
	return cats
}

// isDocComment classifies a comment token's own text: `///` and `//!`
// line comments, `/** ... */` and `/*! ... */` block comments are
// rustdoc; everything else (`//`, `/* */`) is a plain comment.
func isDocComment(text []byte) bool {
	s := string(text)
	switch {
	case strings.HasPrefix(s, "///") && !strings.HasPrefix(s, "////"):
		return true
	case strings.HasPrefix(s, "//!"):
		return true
	case strings.HasPrefix(s, "/**") && !strings.HasPrefix(s, "/***") && len(s) > 4:
		return true
	case strings.HasPrefix(s, "/*!"):
		return true
	default:
		return false
	}
}

func isBlankSpan(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TestRegions walks the tree looking for any testGatableItemKinds node
// (function, module, struct, enum, union, impl block, const, static,
// trait, type alias, use declaration, extern block, macro) that carries
// a #[test] attribute, or is preceded by an attribute that is the
// literal cfg(test) or cfg_attr(test, ...) predicate.
// Compound predicates such as cfg(all(test, unix)) or unrelated
// predicates such as cfg(unix)/cfg(feature = "x") are deliberately never
// matched (spec requirement: conservative discrimination).
//
// tree-sitter-rust does not nest an item's attributes as children of the
// item node; attribute_item/inner_attribute_item appear as preceding
// siblings in the enclosing list (source_file, declaration_list, block).
// So the match walks backward over PrevSibling, not over children.
func (t *rustTree) TestRegions(idx *lineindex.Index) []model.TestRegion {
	var regions []model.TestRegion
	type frame struct{ n *tree_sitter.Node }
	stack := []frame{{t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.n
		if startByte, ok := testGatedItemStart(n, t.src); ok {
			start := idx.LineOf(startByte)
			end := idx.LineOf(int(n.EndByte()-1)) + 1
			regions = append(regions, model.TestRegion{StartLine: start, EndLine: end})
			continue // nested items inside are already covered by this region
		}
		childCount := int(n.ChildCount())
		for i := childCount - 1; i >= 0; i-- {
			child := n.Child(uint(i))
			if child != nil {
				stack = append(stack, frame{child})
			}
		}
	}
	return regions
}

// testGatedItemStart reports whether n is an item kind eligible for
// test-gating (testGatableItemKinds) with a preceding run of attribute
// and doc-comment siblings that includes an attribute matching
// attributeMarksTest, and if so returns the byte offset of the earliest
// sibling in that run (the region's start, per spec 4.3's "attribute
// span" and "doc comments on test items are inside the region" rules).
//
// The walk climbs PrevSibling past attribute_item/inner_attribute_item
// nodes and, separately, past line_comment/block_comment nodes (doc
// comments sit between an item's attributes and earlier code, and must
// be folded into the region without themselves counting as the
// attribute that marks it test). It stops at the first sibling that is
// neither.
func testGatedItemStart(n *tree_sitter.Node, src []byte) (int, bool) {
	kind := n.Kind()
	if !testGatableItemKinds[kind] {
		return 0, false
	}
	marked := false
	start := int(n.StartByte())
	sib := n.PrevSibling()
	for sib != nil {
		sk := sib.Kind()
		switch sk {
		case kindAttributeItem, kindInnerAttributeItem:
			text := string(src[sib.StartByte():sib.EndByte()])
			if attributeMarksTest(text) {
				marked = true
			}
			start = int(sib.StartByte())
		case kindLineComment, kindBlockComment:
			start = int(sib.StartByte())
		default:
			sib = nil
			continue
		}
		sib = sib.PrevSibling()
	}
	if !marked {
		return 0, false
	}
	return start, true
}

// attributeMarksTest inspects one `#[...]` attribute's literal text. The
// minimal, always-on rules match bare `test`, `cfg(test)`, and
// `cfg_attr(test, ...)`; any nesting (`cfg(all(test, ...))`) or other
// predicate is rejected. An operator-supplied allowlist
// (SetExtraTestAttributes) additionally matches bare attribute paths
// such as `tokio::test` or `rstest`.
func attributeMarksTest(attrText string) bool {
	inner := strings.TrimPrefix(attrText, "#")
	inner = strings.TrimPrefix(inner, "!")
	inner = strings.TrimSpace(strings.Trim(inner, "[]"))
	switch {
	case inner == "test":
		return true
	case inner == "cfg(test)":
		return true
	case strings.HasPrefix(inner, "cfg_attr(") && strings.HasSuffix(inner, ")"):
		args := strings.TrimSuffix(strings.TrimPrefix(inner, "cfg_attr("), ")")
		parts := strings.SplitN(args, ",", 2)
		return len(parts) == 2 && strings.TrimSpace(parts[0]) == "test"
	default:
		return isExtraTestAttr(attrPath(inner))
	}
}

// attrPath strips a parenthesized argument list, if any, from an
// attribute's inner text, leaving just its path (e.g. "tokio::test" from
// "tokio::test" unchanged, or "rstest" from "rstest(foo)").
func attrPath(inner string) string {
	if i := strings.IndexByte(inner, '('); i >= 0 {
		return strings.TrimSpace(inner[:i])
	}
	return inner
}

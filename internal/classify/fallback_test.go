package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

func classifyFallback(t *testing.T, src string) []model.LineCategory {
	t.Helper()
	g := NewFallbackGrammar()
	tree, err := g.Parse([]byte(src))
	require.NoError(t, err)
	idx := lineindex.Build([]byte(src))
	return tree.Classify(idx)
}

func TestFallbackBlankLine(t *testing.T) {
	cats := classifyFallback(t, "\n")
	require.Len(t, cats, 1)
	assert.Equal(t, model.Blank, cats[0])
}

func TestFallbackCodeLine(t *testing.T) {
	cats := classifyFallback(t, "let x = 1;\n")
	require.Len(t, cats, 1)
	assert.Equal(t, model.Code, cats[0])
}

func TestFallbackLineComment(t *testing.T) {
	cats := classifyFallback(t, "// plain comment\n")
	require.Len(t, cats, 1)
	assert.Equal(t, model.Comment, cats[0])
}

func TestFallbackRustdocLineComment(t *testing.T) {
	cats := classifyFallback(t, "/// doc comment\n")
	require.Len(t, cats, 1)
	assert.Equal(t, model.Rustdoc, cats[0])
}

func TestFallbackInnerRustdoc(t *testing.T) {
	cats := classifyFallback(t, "//! module doc\n")
	require.Len(t, cats, 1)
	assert.Equal(t, model.Rustdoc, cats[0])
}

func TestFallbackCommentInStringIsCode(t *testing.T) {
	// P5: a "//" inside a string literal must not be treated as a comment.
	cats := classifyFallback(t, `let s = "// not a comment";`+"\n")
	require.Len(t, cats, 1)
	assert.Equal(t, model.Code, cats[0])
}

func TestFallbackBlockComment(t *testing.T) {
	cats := classifyFallback(t, "/* block\ncomment */\n")
	require.Len(t, cats, 2)
	assert.Equal(t, model.Comment, cats[0])
	assert.Equal(t, model.Comment, cats[1])
}

func TestAttributeMarksTest(t *testing.T) {
	tests := []struct {
		attr string
		want bool
	}{
		{"#[test]", true},
		{"#[cfg(test)]", true},
		{"#[cfg_attr(test, ignore)]", true},
		{"#[cfg(unix)]", false},
		{"#[cfg(feature = \"x\")]", false},
		{"#[cfg(all(test, unix))]", false},
		{"#[cfg(any(test))]", false},
		{"#[derive(Debug)]", false},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			assert.Equal(t, tt.want, attributeMarksTest(tt.attr))
		})
	}
}

func TestAttributeMarksTestHonorsExtraAllowlist(t *testing.T) {
	defer SetExtraTestAttributes(nil)

	assert.False(t, attributeMarksTest("#[tokio::test]"))
	SetExtraTestAttributes([]string{"tokio::test"})
	assert.True(t, attributeMarksTest("#[tokio::test]"))
	assert.False(t, attributeMarksTest("#[derive(Debug)]"))
}

func TestFallbackTestRegionsHonorExtraAllowlist(t *testing.T) {
	defer SetExtraTestAttributes(nil)
	SetExtraTestAttributes([]string{"tokio::test"})

	src := "#[tokio::test]\nasync fn it_works() {\n    assert!(true);\n}\n"
	g := NewFallbackGrammar()
	tree, err := g.Parse([]byte(src))
	require.NoError(t, err)
	idx := lineindex.Build([]byte(src))
	regions := tree.TestRegions(idx)
	require.Len(t, regions, 1)
	assert.True(t, regions[0].Contains(1))
	assert.True(t, regions[0].Contains(4))
}

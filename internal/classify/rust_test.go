package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

func classifyRust(t *testing.T, src string) (*rustTree, *lineindex.Index) {
	t.Helper()
	g := NewRustGrammar()
	tree, err := g.Parse([]byte(src))
	require.NoError(t, err)
	rt, ok := tree.(*rustTree)
	require.True(t, ok)
	idx := lineindex.Build([]byte(src))
	return rt, idx
}

func TestRustGrammarCommentInStringIsCode(t *testing.T) {
	rt, idx := classifyRust(t, `let s = "// not a comment";`+"\n")
	cats := rt.Classify(idx)
	require.Len(t, cats, 1)
	assert.Equal(t, model.Code, cats[0])
}

func TestRustGrammarDocCommentSpan(t *testing.T) {
	rt, idx := classifyRust(t, "/// hello\n/// world\n")
	cats := rt.Classify(idx)
	require.Len(t, cats, 2)
	assert.Equal(t, model.Rustdoc, cats[0])
	assert.Equal(t, model.Rustdoc, cats[1])
}

func TestRustGrammarTestFunctionRegion(t *testing.T) {
	src := "fn prod() {}\n#[test]\nfn t() { assert!(true); }\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	require.Len(t, regions, 1)
	assert.False(t, regions[0].Contains(1))
	assert.True(t, regions[0].Contains(2))
	assert.True(t, regions[0].Contains(3))
}

func TestRustGrammarCfgTestModuleRegionCoversWholeBody(t *testing.T) {
	src := "fn p() {}\n#[cfg(test)]\nmod tests {\n    #[test]\n    fn a() {}\n}\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	require.Len(t, regions, 1)
	for line := 2; line <= 6; line++ {
		assert.True(t, regions[0].Contains(line), "line %d should be in the test region", line)
	}
	assert.False(t, regions[0].Contains(1))
}

func TestRustGrammarCfgUnixNeverMatchesTest(t *testing.T) {
	src := "#[cfg(unix)]\nfn only_unix() {}\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	assert.Empty(t, regions)
}

func TestRustGrammarCfgTestNonFnItemIsTest(t *testing.T) {
	src := "fn p() {}\n#[cfg(test)]\nstruct Fixture {\n    val: i32,\n}\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	require.Len(t, regions, 1)
	assert.False(t, regions[0].Contains(1))
	for line := 2; line <= 5; line++ {
		assert.True(t, regions[0].Contains(line), "line %d should be in the test region", line)
	}
}

func TestRustGrammarCfgTestConstItemIsTest(t *testing.T) {
	src := "#[cfg(test)]\nconst LIMIT: i32 = 1;\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	require.Len(t, regions, 1)
	assert.True(t, regions[0].Contains(1))
	assert.True(t, regions[0].Contains(2))
}

func TestRustGrammarDocCommentBeforeTestAttributeIsIncluded(t *testing.T) {
	src := "fn prod() {}\n/// explains the fixture\n#[test]\nfn t() { assert!(true); }\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	require.Len(t, regions, 1)
	assert.False(t, regions[0].Contains(1))
	assert.True(t, regions[0].Contains(2), "doc comment line should be inside the test region")
	assert.True(t, regions[0].Contains(3))
	assert.True(t, regions[0].Contains(4))
}

func TestRustGrammarHonorsExtraAllowlist(t *testing.T) {
	defer SetExtraTestAttributes(nil)
	SetExtraTestAttributes([]string{"tokio::test"})

	src := "#[tokio::test]\nasync fn it_works() {\n    assert!(true);\n}\n"
	rt, idx := classifyRust(t, src)
	regions := rt.TestRegions(idx)
	require.Len(t, regions, 1)
	assert.True(t, regions[0].Contains(1))
	assert.True(t, regions[0].Contains(4))
}

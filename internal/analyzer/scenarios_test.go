package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/rslines/internal/model"
)

// These mirror the end-to-end scenarios literally: each input is the sole
// file analyzed, and the expected LineStats are taken straight from the
// scenario's described counts.

func TestScenarioEmptyFile(t *testing.T) {
	a := New(0)
	stats, err := a.AnalyzeBytes("s1.rs", []byte(""))
	require.NoError(t, err)
	zero := model.LineStats{}
	assert.Equal(t, zero, stats.Total)
	assert.Equal(t, zero, stats.Production)
	assert.Equal(t, zero, stats.Test)
}

func TestScenarioSingleBlankLine(t *testing.T) {
	a := New(0)
	stats, err := a.AnalyzeBytes("s2.rs", []byte("\n"))
	require.NoError(t, err)
	assert.Equal(t, model.LineStats{All: 1, Blank: 1}, stats.Total)
	assert.Equal(t, model.LineStats{All: 1, Blank: 1}, stats.Production)
	assert.Equal(t, model.LineStats{}, stats.Test)
}

func TestScenarioDocCommentOnly(t *testing.T) {
	a := New(0)
	stats, err := a.AnalyzeBytes("s3.rs", []byte("/// hello\n/// world\n"))
	require.NoError(t, err)
	assert.Equal(t, model.LineStats{All: 2, Rustdoc: 2}, stats.Total)
	assert.Equal(t, model.LineStats{All: 2, Rustdoc: 2}, stats.Production)
}

func TestScenarioCodeWithTrailingComment(t *testing.T) {
	a := New(0)
	stats, err := a.AnalyzeBytes("s4.rs", []byte("let x = 1; // set x\n"))
	require.NoError(t, err)
	assert.Equal(t, model.LineStats{All: 1, Code: 1}, stats.Total)
	assert.Equal(t, model.LineStats{All: 1, Code: 1}, stats.Production)
}

func TestScenarioStringContainingCommentLookingBytes(t *testing.T) {
	a := New(0)
	stats, err := a.AnalyzeBytes("s5.rs", []byte(`let s = "// not a comment";`+"\n"))
	require.NoError(t, err)
	assert.Equal(t, model.LineStats{All: 1, Code: 1}, stats.Total)
	assert.Equal(t, 0, stats.Total.Comment)
	assert.Equal(t, 0, stats.Total.Rustdoc)
}

func TestScenarioTestAndProductionFunctionMix(t *testing.T) {
	a := New(0)
	src := "fn prod() {}\n#[test]\nfn t() { assert!(true); }\n"
	stats, err := a.AnalyzeBytes("s6.rs", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total.All)
	assert.Equal(t, 1, stats.Production.Code)
	assert.Equal(t, 2, stats.Test.Code)
	assert.Equal(t, 0, stats.Total.Blank+stats.Total.Comment+stats.Total.Rustdoc)
}

func TestScenarioCfgTestModule(t *testing.T) {
	a := New(0)
	src := "fn p() {}\n#[cfg(test)]\nmod tests {\n    #[test]\n    fn a() {}\n}\n"
	stats, err := a.AnalyzeBytes("s7.rs", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Production.Code)
	assert.Equal(t, 5, stats.Test.Code)
	assert.Equal(t, 0, stats.Total.Blank+stats.Total.Comment+stats.Total.Rustdoc)
}

func TestScenarioCfgUnixItemStaysProduction(t *testing.T) {
	a := New(0)
	src := "#[cfg(unix)]\nfn only_unix() {}\n"
	stats, err := a.AnalyzeBytes("s8.rs", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Production.Code)
	assert.Equal(t, model.LineStats{}, stats.Test)
}

package lineindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyFileHasZeroLines(t *testing.T) {
	idx := Build(nil)
	assert.Equal(t, 0, idx.LineCount())
}

func TestLineCountNoTrailingNewline(t *testing.T) {
	idx := Build([]byte("a\nb\nc"))
	assert.Equal(t, 3, idx.LineCount())
}

func TestLineCountTrailingNewline(t *testing.T) {
	idx := Build([]byte("a\nb\nc\n"))
	assert.Equal(t, 3, idx.LineCount())
}

func TestLineOf(t *testing.T) {
	src := []byte("one\ntwo\nthree\n")
	idx := Build(src)
	tests := []struct {
		offset   int
		wantLine int
	}{
		{0, 1},
		{3, 1},
		{4, 2},
		{8, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.wantLine, idx.LineOf(tt.offset))
	}
}

func TestTryLineOfRejectsOffsetPastEOF(t *testing.T) {
	idx := Build([]byte("one\ntwo\n"))
	_, err := idx.TryLineOf(100)
	require.ErrorIs(t, err, ErrInvalidOffset)

	_, err = idx.TryLineOf(-1)
	require.ErrorIs(t, err, ErrInvalidOffset)

	line, err := idx.TryLineOf(4)
	require.NoError(t, err)
	assert.Equal(t, 2, line)
}

func TestLineBounds(t *testing.T) {
	src := []byte("abc\nde\nf")
	idx := Build(src)
	start, end := idx.LineBounds(1)
	assert.Equal(t, "abc", string(src[start:end]))
	start, end = idx.LineBounds(2)
	assert.Equal(t, "de", string(src[start:end]))
	start, end = idx.LineBounds(3)
	assert.Equal(t, "f", string(src[start:end]))
}

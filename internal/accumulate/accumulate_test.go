package accumulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/rslines/internal/model"
)

func threeFiles() []model.FileStats {
	return []model.FileStats{
		{Path: "b.rs", Total: model.LineStats{All: 2, Code: 2}},
		{Path: "a.rs", Total: model.LineStats{All: 1, Code: 1}},
		{Path: "c.rs", Total: model.LineStats{All: 3, Code: 3}},
	}
}

// IterFiles on both backends yields insertion/append order; sorting into
// the final deterministic path order is internal/report.Build's job, not
// the accumulator's (spec 4.5 vs 4.7).

func TestMemoryIterFilesIsInsertionOrder(t *testing.T) {
	m := NewMemory()
	for _, f := range threeFiles() {
		require.NoError(t, m.AddFile(f))
	}
	var order []string
	require.NoError(t, m.IterFiles(func(fs model.FileStats) error {
		order = append(order, fs.Path)
		return nil
	}))
	assert.Equal(t, []string{"b.rs", "a.rs", "c.rs"}, order)
	assert.Equal(t, 3, m.Summary().Files)
	assert.Equal(t, 6, m.Summary().Total.All)
}

func TestSpillIterFilesIsAppendOrder(t *testing.T) {
	s, err := NewSpill(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	for _, f := range threeFiles() {
		require.NoError(t, s.AddFile(f))
	}
	var order []string
	require.NoError(t, s.IterFiles(func(fs model.FileStats) error {
		order = append(order, fs.Path)
		return nil
	}))
	assert.Equal(t, []string{"b.rs", "a.rs", "c.rs"}, order)
	assert.Equal(t, 3, s.Summary().Files)
}

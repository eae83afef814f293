package accumulate

import (
	"sync"

	"github.com/ericfisherdev/rslines/internal/model"
)

// Memory is the default accumulator: an ordered in-memory slice of every
// FileStats, plus a running Summary. Simple and fast for the common
// case, bounded only by how much a whole tree's FileStats cost to hold.
type Memory struct {
	mu      sync.Mutex
	summary model.Summary
	files   []model.FileStats
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) AddFile(fs model.FileStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary.AddFile(fs)
	m.files = append(m.files, fs)
	return nil
}

func (m *Memory) Summary() model.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary
}

// IterFiles yields files in insertion order. Sorting into the final
// deterministic path order is the Report Builder's job (internal/report),
// not the accumulator's: keeping it here would mean every backend has to
// reimplement the same ordering policy.
func (m *Memory) IterFiles(fn func(model.FileStats) error) error {
	m.mu.Lock()
	ordered := make([]model.FileStats, len(m.files))
	copy(ordered, m.files)
	m.mu.Unlock()

	for _, fs := range ordered {
		if err := fn(fs); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Flush() error { return nil }

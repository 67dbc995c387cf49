// Package memory is an in-memory ExpenseExporter used in tests and as a
// stand-in when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendtrack/internal/core"
	ports "spendtrack/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	exports [][]core.Expense
}

var _ ports.ExpenseExporter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Export records the snapshot and returns a synthetic reference.
func (s *Store) Export(_ context.Context, expenses []core.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", fmt.Errorf("%w: no expenses available to export", core.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := append([]core.Expense(nil), expenses...)
	s.exports = append(s.exports, snapshot)
	return fmt.Sprintf("mem:%d", len(s.exports)), nil
}

// Exports returns the recorded snapshots, oldest first.
func (s *Store) Exports() [][]core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]core.Expense, len(s.exports))
	copy(out, s.exports)
	return out
}

package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"spendtrack/internal/core"
)

// csvHeader is the fixed export field order. The currency column exists
// for compatibility with downstream importers and is always empty:
// expenses carry no currency in this system.
var csvHeader = []string{"id", "date", "category", "description", "amount", "currency", "created_at"}

// ExportCSV writes the full ledger to a CSV file, header row first. An
// empty path picks a timestamped file under the configured export
// directory; the parent directory is created either way. Exporting an
// empty ledger is a validation error, not a silent empty file.
func (r *Reporter) ExportCSV(ctx context.Context, path string) (string, error) {
	expenses, err := r.store.ListExpenses(ctx)
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "", fmt.Errorf("%w: no expenses available to export", core.ErrInvalidInput)
	}

	if path == "" {
		path = filepath.Join(r.exportDir,
			fmt.Sprintf("expenses_%s.csv", time.Now().Format("20060102_150405")))
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Category,
			e.Description,
			e.Amount.String(),
			"",
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

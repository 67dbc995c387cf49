// Package sheets defines the outbound export port for pushing the
// ledger to an external spreadsheet.
package sheets

import (
	"context"

	"spendtrack/internal/core"
)

// ExpenseExporter pushes a snapshot of the ledger to an external sheet
// and returns a reference to where the rows landed.
type ExpenseExporter interface {
	Export(ctx context.Context, expenses []core.Expense) (ref string, err error)
}

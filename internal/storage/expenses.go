package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spendtrack/internal/core"
)

const expenseColumns = "id, date, category, description, amount_cents, created_at"

// createdAtFormat is the storage format for creation timestamps. The
// fractional second is fixed-width (RFC3339Nano would trim trailing
// zeros) so that lexicographic order of the TEXT column equals temporal
// order, which the created_at DESC tiebreak in the listing queries
// relies on.
const createdAtFormat = "2006-01-02T15:04:05.000000000Z07:00"

// AddExpense validates and inserts a new expense, returning its id.
// The creation timestamp is assigned here and never changes.
func (s *Store) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	createdAt := time.Now().UTC().Format(createdAtFormat)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (date, category, description, amount_cents, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.Date.String(), e.Category, e.Description, e.Amount.Cents, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"date", e.Date.String(),
		"category", e.Category,
		"amount_cents", e.Amount.Cents)

	return id, nil
}

// GetExpense fetches a single expense by id. Returns ErrNotFound when
// the id does not exist.
func (s *Store) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// ListExpenses returns every expense, most recent activity first: date
// descending, then creation time descending, id as the final tiebreaker.
func (s *Store) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		ORDER BY date DESC, created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListExpensesByCategory groups the descending full list by category.
// Group order is first-seen order in that list; within each group the
// original ordering is preserved.
func (s *Store) ListExpensesByCategory(ctx context.Context) ([]core.CategoryExpenses, error) {
	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]core.CategoryExpenses, 0)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, core.CategoryExpenses{Category: e.Category})
		}
		groups[i].Expenses = append(groups[i].Expenses, e)
	}
	return groups, nil
}

// ExpensesForMonth returns expenses whose date falls in the given year
// and month, date descending.
func (s *Store) ExpensesForMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE strftime('%Y', date) = ? AND strftime('%m', date) = ?
		ORDER BY date DESC, created_at DESC, id DESC`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, fmt.Errorf("expenses for month %d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// UpdateExpense applies a partial update. An empty update is a no-op
// returning false; so is an unknown id. Supplied fields are validated
// with the same rules as AddExpense before anything is written.
func (s *Store) UpdateExpense(ctx context.Context, id int64, upd core.ExpenseUpdate) (bool, error) {
	if upd.IsEmpty() {
		return false, nil
	}
	if err := upd.Validate(); err != nil {
		return false, err
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, upd.Date.String())
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *upd.Category)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, upd.Amount.Cents)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("update expense %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update expense %d rows: %w", id, err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Expense updated", "id", id, "fields", len(sets))
	}
	return n > 0, nil
}

// DeleteExpense removes an expense by id. Returns false when nothing was
// deleted.
func (s *Store) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense %d rows: %w", id, err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Expense deleted", "id", id)
	}
	return n > 0, nil
}

// CategoryTotals sums amounts per category, largest first.
func (s *Store) CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents) AS total
		FROM expenses
		GROUP BY category
		ORDER BY total DESC, category ASC`)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var t core.CategoryTotal
		var cents int64
		if err := rows.Scan(&t.Category, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		t.Total = core.Cents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category totals rows: %w", err)
	}
	return totals, nil
}

// MonthlyTotals sums amounts per YYYY-MM month, most recent first.
func (s *Store) MonthlyTotals(ctx context.Context) ([]core.MonthTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', date) AS month, SUM(amount_cents) AS total
		FROM expenses
		GROUP BY month
		ORDER BY month DESC`)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []core.MonthTotal
	for rows.Next() {
		var t core.MonthTotal
		var cents int64
		if err := rows.Scan(&t.Month, &cents); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		t.Total = core.Cents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly totals rows: %w", err)
	}
	return totals, nil
}

// Stats returns the ledger overview. All fields are zero on an empty
// ledger, never an error.
func (s *Store) Stats(ctx context.Context) (core.Stats, error) {
	var st core.Stats
	var cents int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount_cents), 0), COUNT(DISTINCT category)
		FROM expenses`).Scan(&st.TotalExpenses, &cents, &st.TotalCategories)
	if err != nil {
		return core.Stats{}, fmt.Errorf("ledger stats: %w", err)
	}
	st.TotalAmount = core.Cents(cents)
	return st, nil
}

// SeedSampleData inserts a small demo ledger. Used on first run so a new
// user has something to explore.
func (s *Store) SeedSampleData(ctx context.Context) error {
	samples := []core.Expense{
		{Date: core.MustParseDate("2024-01-15"), Category: "Food", Description: "Lunch at restaurant", Amount: core.Cents(2550)},
		{Date: core.MustParseDate("2024-01-16"), Category: "Transportation", Description: "Bus ticket", Amount: core.Cents(320)},
		{Date: core.MustParseDate("2024-01-17"), Category: "Entertainment", Description: "Movie ticket", Amount: core.Cents(1200)},
		{Date: core.MustParseDate("2024-01-18"), Category: "Food", Description: "Groceries", Amount: core.Cents(4530)},
		{Date: core.MustParseDate("2024-01-19"), Category: "Utilities", Description: "Electricity bill", Amount: core.Cents(8500)},
		{Date: core.MustParseDate("2024-01-20"), Category: "Transportation", Description: "Gas", Amount: core.Cents(4000)},
		{Date: core.MustParseDate("2024-01-21"), Category: "Food", Description: "Coffee", Amount: core.Cents(450)},
		{Date: core.MustParseDate("2024-01-22"), Category: "Entertainment", Description: "Concert ticket", Amount: core.Cents(7500)},
		{Date: core.MustParseDate("2024-01-23"), Category: "Shopping", Description: "New clothes", Amount: core.Cents(12000)},
		{Date: core.MustParseDate("2024-01-24"), Category: "Food", Description: "Dinner out", Amount: core.Cents(3575)},
	}
	for _, e := range samples {
		if _, err := s.AddExpense(ctx, e); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanExpense decodes one expense row field by field. Dates and
// timestamps are stored as text and parsed here, at the storage
// boundary, so malformed rows surface immediately.
func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e       core.Expense
		date    string
		cents   int64
		created string
	)
	if err := row.Scan(&e.ID, &date, &e.Category, &e.Description, &cents, &created); err != nil {
		return core.Expense{}, err
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	e.Date = d
	e.Amount = core.Cents(cents)

	ts, err := time.Parse(createdAtFormat, created)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored created_at %q: %w", created, err)
	}
	e.CreatedAt = ts

	return e, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expense rows: %w", err)
	}
	return out, nil
}

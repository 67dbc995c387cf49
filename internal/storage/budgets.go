package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"spendtrack/internal/core"
	"spendtrack/internal/period"
)

// SetBudget creates or replaces the budget for (category, period). The
// row-level UNIQUE constraint makes this an upsert: setting an existing
// pair overwrites the amount rather than duplicating the row. Zero
// budgets are allowed; negative ones are not.
func (s *Store) SetBudget(ctx context.Context, category string, p period.Period, amount core.Money) error {
	if strings.TrimSpace(category) == "" {
		return core.ErrEmptyCategory
	}
	p, err := period.Parse(string(p))
	if err != nil {
		return err
	}
	if amount.Cents < 0 {
		return core.ErrNegativeAmount
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO budgets (category, period, amount_cents)
		VALUES (?, ?, ?)
		ON CONFLICT (category, period) DO UPDATE SET amount_cents = excluded.amount_cents`,
		category, string(p), amount.Cents)
	if err != nil {
		return fmt.Errorf("set budget %s/%s: %w", category, p, err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"category", category,
		"period", string(p),
		"amount_cents", amount.Cents)
	return nil
}

// GetBudget fetches the budget for (category, period). Returns
// ErrNotFound when no budget is configured for the pair.
func (s *Store) GetBudget(ctx context.Context, category string, p period.Period) (core.Budget, error) {
	var b core.Budget
	var cents int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, category, period, amount_cents
		FROM budgets
		WHERE category = ? AND period = ?`,
		category, string(p)).Scan(&b.ID, &b.Category, &b.Period, &cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget %s/%s: %w", category, p, err)
	}
	b.Amount = core.Cents(cents)
	return b, nil
}

// ListBudgets returns all budgets ordered by (period, category), or just
// one period's budgets ordered by category when p is non-empty.
func (s *Store) ListBudgets(ctx context.Context, p period.Period) ([]core.Budget, error) {
	query := "SELECT id, category, period, amount_cents FROM budgets ORDER BY period, category"
	args := []any{}
	if p != "" {
		query = "SELECT id, category, period, amount_cents FROM budgets WHERE period = ? ORDER BY category"
		args = append(args, string(p))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var cents int64
		if err := rows.Scan(&b.ID, &b.Category, &b.Period, &cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Amount = core.Cents(cents)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("budget rows: %w", err)
	}
	return out, nil
}

// SpentForPeriod sums expense amounts inside the period's inclusive date
// range, optionally restricted to one category. A zero ref means today.
func (s *Store) SpentForPeriod(ctx context.Context, p period.Period, category string, ref core.Date) (core.Money, error) {
	rng, err := p.Range(ref)
	if err != nil {
		return core.Money{}, err
	}

	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE date BETWEEN ? AND ?`
	args := []any{rng.Start.String(), rng.End.String()}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	var cents int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return core.Money{}, fmt.Errorf("spent for %s period: %w", p, err)
	}
	return core.Cents(cents), nil
}

// SpentByCategoryForPeriod sums expense amounts per category over the
// period's inclusive date range. Empty ledgers yield an empty map.
func (s *Store) SpentByCategoryForPeriod(ctx context.Context, p period.Period, ref core.Date) (map[string]core.Money, error) {
	rng, err := p.Range(ref)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount_cents), 0) AS total
		FROM expenses
		WHERE date BETWEEN ? AND ?
		GROUP BY category`,
		rng.Start.String(), rng.End.String())
	if err != nil {
		return nil, fmt.Errorf("spent by category for %s period: %w", p, err)
	}
	defer rows.Close()

	spent := make(map[string]core.Money)
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan spent by category: %w", err)
		}
		spent[category] = core.Cents(cents)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spent by category rows: %w", err)
	}
	return spent, nil
}

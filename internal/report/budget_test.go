package report

import (
	"context"
	"strings"
	"testing"

	"spendtrack/internal/core"
	"spendtrack/internal/period"
)

func TestBuildBudgetStatus(t *testing.T) {
	budgets := []core.Budget{
		{Category: "Food", Period: "monthly", Amount: core.Cents(50000)},
		{Category: "Transportation", Period: "monthly", Amount: core.Cents(10000)},
		{Category: "Entertainment", Period: "monthly", Amount: core.Cents(5000)},
	}
	spent := map[string]core.Money{
		"Food":          core.Cents(25000), // half used
		"Entertainment": core.Cents(7500),  // over budget
		"Shopping":      core.Cents(99999), // no budget, ignored
	}

	lines := BuildBudgetStatus(budgets, spent)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	food := lines[0]
	if food.Category != "Food" || food.Spent.Cents != 25000 ||
		food.Remaining.Cents != 25000 || food.UsedPct != 50 || food.Over {
		t.Fatalf("unexpected food line: %+v", food)
	}

	transport := lines[1]
	if transport.Spent.Cents != 0 || transport.Remaining.Cents != 10000 || transport.UsedPct != 0 || transport.Over {
		t.Fatalf("category without spend should report zero: %+v", transport)
	}

	entertainment := lines[2]
	if !entertainment.Over || entertainment.Remaining.Cents != -2500 || entertainment.UsedPct != 150 {
		t.Fatalf("unexpected over-budget line: %+v", entertainment)
	}
}

func TestBuildBudgetStatusZeroBudget(t *testing.T) {
	lines := BuildBudgetStatus(
		[]core.Budget{{Category: "Food", Period: "weekly", Amount: core.Cents(0)}},
		map[string]core.Money{"Food": core.Cents(100)},
	)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	// Division by a zero budget is skipped; overspend is still flagged.
	if lines[0].UsedPct != 0 || !lines[0].Over || lines[0].Remaining.Cents != -100 {
		t.Fatalf("unexpected zero-budget line: %+v", lines[0])
	}
}

func TestBudgetStatusReport(t *testing.T) {
	r, store, out, _ := newTestReporter(t)
	ctx := context.Background()

	if err := store.SetBudget(ctx, "Food", period.Weekly, core.Cents(5000)); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	addExpense(t, store, "2024-01-15", "Food", "monday lunch", 3000)
	addExpense(t, store, "2024-01-21", "Food", "sunday dinner", 4000)

	if err := r.BudgetStatus(ctx, period.Weekly, core.MustParseDate("2024-01-17")); err != nil {
		t.Fatalf("budget status: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Budget Status", "Food", "50.00", "70.00", "OVER"} {
		if !strings.Contains(got, want) {
			t.Fatalf("budget status missing %q:\n%s", want, got)
		}
	}
}

func TestBudgetStatusNoBudgets(t *testing.T) {
	r, _, out, _ := newTestReporter(t)
	if err := r.BudgetStatus(context.Background(), period.Monthly, core.Date{}); err != nil {
		t.Fatalf("budget status: %v", err)
	}
	if !strings.Contains(out.String(), "No budgets configured for monthly period.") {
		t.Fatalf("expected no-budgets notice, got:\n%s", out.String())
	}
}

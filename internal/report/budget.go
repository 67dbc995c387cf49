package report

import (
	"context"
	"fmt"
	"strings"

	"spendtrack/internal/core"
	"spendtrack/internal/period"
)

// BudgetLine is the utilization of one category's budget over a period.
// Remaining goes negative when the category is over budget.
type BudgetLine struct {
	Category  string
	Budget    core.Money
	Spent     core.Money
	Remaining core.Money
	UsedPct   float64
	Over      bool
}

// BuildBudgetStatus joins configured budgets with the spend per category
// over the same period range. Categories without expenses report zero
// spend; spend in categories without a budget is ignored here.
func BuildBudgetStatus(budgets []core.Budget, spent map[string]core.Money) []BudgetLine {
	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		sp := spent[b.Category]
		line := BudgetLine{
			Category:  b.Category,
			Budget:    b.Amount,
			Spent:     sp,
			Remaining: b.Amount.Sub(sp),
		}
		if b.Amount.Cents > 0 {
			line.UsedPct = float64(sp.Cents) / float64(b.Amount.Cents) * 100
		}
		line.Over = line.Remaining.Cents < 0
		lines = append(lines, line)
	}
	return lines
}

// BudgetStatus prints utilization for every budget configured on the
// given period, using ref (zero = today) to pick the date range.
func (r *Reporter) BudgetStatus(ctx context.Context, p period.Period, ref core.Date) error {
	budgets, err := r.store.ListBudgets(ctx, p)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Fprintf(r.out, "No budgets configured for %s period.\n", p)
		return nil
	}

	spent, err := r.store.SpentByCategoryForPeriod(ctx, p, ref)
	if err != nil {
		return err
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# Budget Status (%s)\n\n", strings.ToUpper(string(p)))
	md.WriteString("| Category | Budget | Spent | Remaining | Used % | |\n")
	md.WriteString("|----------|-------:|------:|----------:|-------:|--|\n")
	for _, line := range BuildBudgetStatus(budgets, spent) {
		marker := ""
		if line.Over {
			marker = "**OVER**"
		}
		fmt.Fprintf(&md, "| %s | $%s | $%s | $%s | %.1f%% | %s |\n",
			line.Category, line.Budget, line.Spent, line.Remaining, line.UsedPct, marker)
	}

	fmt.Fprintln(r.out, renderMarkdown(md.String()))
	return nil
}

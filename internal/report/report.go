// Package report turns ledger aggregates into human-readable output:
// plain-text summaries, a markdown detailed report and budget status
// rendered for the terminal, and the CSV export.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// Reporter reads through the ledger store and writes formatted reports.
type Reporter struct {
	store     *storage.Store
	out       io.Writer
	exportDir string
}

func New(store *storage.Store, out io.Writer, exportDir string) *Reporter {
	return &Reporter{store: store, out: out, exportDir: exportDir}
}

// CategorySummary prints per-category totals with their share of the
// overall spend, largest first.
func (r *Reporter) CategorySummary(ctx context.Context) error {
	totals, err := r.store.CategoryTotals(ctx)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Fprintln(r.out, "No expense data available.")
		return nil
	}

	var grand core.Money
	for _, t := range totals {
		grand = grand.Add(t.Total)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	fmt.Fprintln(r.out, "CATEGORY SUMMARY")
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	for _, t := range totals {
		pct := 0.0
		if grand.Cents > 0 {
			pct = float64(t.Total.Cents) / float64(grand.Cents) * 100
		}
		fmt.Fprintf(r.out, "%-20s $%8s (%5.1f%%)\n", t.Category, t.Total, pct)
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	fmt.Fprintf(r.out, "%-20s $%8s\n", "TOTAL", grand)
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	return nil
}

// MonthlySummary prints per-month totals, most recent month first.
func (r *Reporter) MonthlySummary(ctx context.Context) error {
	totals, err := r.store.MonthlyTotals(ctx)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Fprintln(r.out, "No expense data available.")
		return nil
	}

	var grand core.Money
	for _, t := range totals {
		grand = grand.Add(t.Total)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	fmt.Fprintln(r.out, "MONTHLY SUMMARY")
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	for _, t := range totals {
		pct := 0.0
		if grand.Cents > 0 {
			pct = float64(t.Total.Cents) / float64(grand.Cents) * 100
		}
		fmt.Fprintf(r.out, "%-15s $%8s (%5.1f%%)\n", t.Month, t.Total, pct)
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	fmt.Fprintf(r.out, "%-15s $%8s\n", "TOTAL", grand)
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	return nil
}

// DetailedReport prints overall statistics and the ten most recent
// expenses as a markdown document rendered for the terminal.
func (r *Reporter) DetailedReport(ctx context.Context) error {
	expenses, err := r.store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Fprintln(r.out, "No expense data available.")
		return nil
	}
	stats, err := r.store.Stats(ctx)
	if err != nil {
		return err
	}

	var md strings.Builder
	md.WriteString("# Detailed Expense Report\n\n")
	fmt.Fprintf(&md, "- Total expenses: **%d**\n", stats.TotalExpenses)
	fmt.Fprintf(&md, "- Total amount: **$%s**\n", stats.TotalAmount)
	fmt.Fprintf(&md, "- Categories: **%d**\n", stats.TotalCategories)
	if stats.TotalExpenses > 0 {
		avg := core.Cents(stats.TotalAmount.Cents / stats.TotalExpenses)
		fmt.Fprintf(&md, "- Average per expense: **$%s**\n", avg)
	}

	md.WriteString("\n## Recent Expenses (Last 10)\n\n")
	md.WriteString("| ID | Date | Category | Description | Amount |\n")
	md.WriteString("|---:|------|----------|-------------|-------:|\n")
	shown := expenses
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, e := range shown {
		fmt.Fprintf(&md, "| %d | %s | %s | %s | $%s |\n",
			e.ID, e.Date, e.Category, e.Description, e.Amount)
	}
	if rest := len(expenses) - len(shown); rest > 0 {
		fmt.Fprintf(&md, "\n... and %d more expenses\n", rest)
	}

	fmt.Fprintln(r.out, renderMarkdown(md.String()))
	return nil
}

// Stats prints the compact ledger overview.
func (r *Reporter) Stats(ctx context.Context) error {
	stats, err := r.store.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, strings.Repeat("=", 40))
	fmt.Fprintln(r.out, "LEDGER STATISTICS")
	fmt.Fprintln(r.out, strings.Repeat("=", 40))
	fmt.Fprintf(r.out, "Total Expenses: %d\n", stats.TotalExpenses)
	fmt.Fprintf(r.out, "Total Amount: $%s\n", stats.TotalAmount)
	fmt.Fprintf(r.out, "Categories: %d\n", stats.TotalCategories)
	if stats.TotalExpenses > 0 {
		avg := core.Cents(stats.TotalAmount.Cents / stats.TotalExpenses)
		fmt.Fprintf(r.out, "Average per Expense: $%s\n", avg)
	}
	fmt.Fprintln(r.out, strings.Repeat("=", 40))
	return nil
}

// renderMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer cannot be built (e.g. no usable TTY style).
func renderMarkdown(md string) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"spendtrack/internal/chart"
	"spendtrack/internal/config"
	"spendtrack/internal/core"
	"spendtrack/internal/period"
	"spendtrack/internal/report"
	"spendtrack/internal/sheets"
	"spendtrack/internal/sheets/google"
	"spendtrack/internal/storage"
)

// App is the interactive menu application. It owns no state beyond its
// collaborators; every operation round-trips through the ledger store.
type App struct {
	cfg     *config.Config
	store   *storage.Store
	reports *report.Reporter
	charts  *chart.Renderer
	lines   <-chan inputLine
	out     io.Writer

	// newExporter is swappable in tests.
	newExporter func(ctx context.Context) (sheets.ExpenseExporter, error)
}

func NewApp(cfg *config.Config, store *storage.Store, in io.Reader, out io.Writer) *App {
	a := &App{
		cfg:     cfg,
		store:   store,
		reports: report.New(store, out, cfg.ExportDir),
		charts:  chart.New(cfg.ChartDir),
		lines:   readLines(in),
		out:     out,
	}
	a.newExporter = func(ctx context.Context) (sheets.ExpenseExporter, error) {
		return google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	}
	return a
}

// Run drives the main menu until the user exits or input ends. Storage
// failures propagate out; validation and not-found outcomes are printed
// and the loop continues.
func (a *App) Run(ctx context.Context) error {
	if err := a.checkFirstRun(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Personal Expense Tracker")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))

	for {
		fmt.Fprint(a.out, `
Main Menu:
1. Add Expense
2. List Expenses
3. Delete Expense
4. Show Summaries
5. Show Charts
6. Detailed Report
7. Statistics
8. Export to CSV
9. Edit Expense
10. Budgets
11. Export to Google Sheets
0. Exit
`)
		choice, err := a.prompt(ctx, "\nSelect option (0-11): ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "0":
			fmt.Fprintln(a.out, "\nThank you for using Personal Expense Tracker!")
			return nil
		case "1":
			actionErr = a.addExpense(ctx)
		case "2":
			actionErr = a.listExpenses(ctx)
		case "3":
			actionErr = a.deleteExpense(ctx)
		case "4":
			actionErr = a.showSummaries(ctx)
		case "5":
			actionErr = a.showCharts(ctx)
		case "6":
			actionErr = a.reports.DetailedReport(ctx)
		case "7":
			actionErr = a.reports.Stats(ctx)
		case "8":
			actionErr = a.exportCSV(ctx)
		case "9":
			actionErr = a.editExpense(ctx)
		case "10":
			actionErr = a.manageBudgets(ctx)
		case "11":
			actionErr = a.exportSheets(ctx)
		default:
			fmt.Fprintln(a.out, "Invalid option. Please try again.")
		}

		if err := a.reportError(actionErr); err != nil {
			return err
		}
	}
}

// checkFirstRun seeds sample data into an empty ledger so a new user
// has something to explore.
func (a *App) checkFirstRun(ctx context.Context) error {
	stats, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.TotalExpenses > 0 {
		return nil
	}
	fmt.Fprintln(a.out, "Welcome to Personal Expense Tracker!")
	fmt.Fprintln(a.out, "This appears to be your first time using the app.")
	fmt.Fprintln(a.out, "Adding sample data to get you started...")
	if err := a.store.SeedSampleData(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sample data added successfully!")
	return nil
}

// reportError prints caller-correctable outcomes and swallows them;
// anything else is fatal and bubbles up.
func (a *App) reportError(err error) error {
	switch {
	case err == nil:
		return nil
	case err == io.EOF:
		return nil
	case errors.Is(err, core.ErrInvalidInput):
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return nil
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintln(a.out, "Nothing found.")
		return nil
	case errors.Is(err, chart.ErrNoData):
		fmt.Fprintln(a.out, "No expense data available.")
		return nil
	default:
		return err
	}
}

func (a *App) addExpense(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nADD NEW EXPENSE")

	dateInput, err := a.prompt(ctx, "Enter date (YYYY-MM-DD) or press Enter for today: ")
	if err != nil {
		return err
	}
	date := core.Today()
	if dateInput != "" {
		if date, err = core.ParseDate(dateInput); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "Common categories: Food, Transportation, Entertainment, Utilities, Shopping, Healthcare")
	category, err := a.prompt(ctx, "Enter category: ")
	if err != nil {
		return err
	}
	description, err := a.prompt(ctx, "Enter description: ")
	if err != nil {
		return err
	}
	amountInput, err := a.prompt(ctx, "Enter amount: $")
	if err != nil {
		return err
	}
	amount, err := core.ParseMoney(amountInput)
	if err != nil {
		return err
	}

	id, err := a.store.AddExpense(ctx, core.Expense{
		Date:        date,
		Category:    category,
		Description: description,
		Amount:      amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nExpense added successfully!")
	fmt.Fprintf(a.out, "  ID: %d\n  Date: %s\n  Category: %s\n  Description: %s\n  Amount: $%s\n",
		id, date, category, description, amount)
	return nil
}

func (a *App) listExpenses(ctx context.Context) error {
	limitInput, err := a.prompt(ctx, "Enter number of expenses to show (or press Enter for all): ")
	if err != nil {
		return err
	}

	expenses, err := a.store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Fprintln(a.out, "No expenses found.")
		return nil
	}

	total := len(expenses)
	if limit, err := strconv.Atoi(limitInput); err == nil && limit > 0 && limit < total {
		expenses = expenses[:limit]
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, strings.Repeat("-", 80))
	fmt.Fprintf(a.out, "%-4s %-12s %-15s %-25s %-10s\n", "ID", "Date", "Category", "Description", "Amount")
	fmt.Fprintln(a.out, strings.Repeat("-", 80))
	for _, e := range expenses {
		desc := e.Description
		if r := []rune(desc); len(r) > 24 {
			desc = string(r[:24])
		}
		fmt.Fprintf(a.out, "%-4d %-12s %-15s %-25s $%-9s\n", e.ID, e.Date, e.Category, desc, e.Amount)
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 80))
	fmt.Fprintf(a.out, "Showing %d of %d expenses\n", len(expenses), total)
	return nil
}

func (a *App) deleteExpense(ctx context.Context) error {
	idInput, err := a.prompt(ctx, "\nEnter expense ID to delete: ")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(idInput, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: expense ID must be a number", core.ErrInvalidInput)
	}

	expense, err := a.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nExpense to delete:")
	a.printExpense(expense)

	ok, err := a.confirm(ctx, "\nAre you sure you want to delete this expense? (y/N): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Deletion cancelled.")
		return nil
	}

	deleted, err := a.store.DeleteExpense(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintln(a.out, "Expense deleted successfully!")
	} else {
		fmt.Fprintln(a.out, "Nothing found.")
	}
	return nil
}

func (a *App) editExpense(ctx context.Context) error {
	idInput, err := a.prompt(ctx, "\nEnter expense ID to edit: ")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(idInput, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: expense ID must be a number", core.ErrInvalidInput)
	}

	expense, err := a.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nLeave a field blank to keep the current value.")

	var upd core.ExpenseUpdate

	fmt.Fprintf(a.out, "Current Date: %s\n", expense.Date)
	if input, err := a.prompt(ctx, "New Date (YYYY-MM-DD): "); err != nil {
		return err
	} else if input != "" {
		d, err := core.ParseDate(input)
		if err != nil {
			return err
		}
		upd.Date = &d
	}

	fmt.Fprintf(a.out, "Current Category: %s\n", expense.Category)
	if input, err := a.prompt(ctx, "New Category: "); err != nil {
		return err
	} else if input != "" {
		upd.Category = &input
	}

	fmt.Fprintf(a.out, "Current Description: %s\n", expense.Description)
	if input, err := a.prompt(ctx, "New Description: "); err != nil {
		return err
	} else if input != "" {
		upd.Description = &input
	}

	fmt.Fprintf(a.out, "Current Amount: $%s\n", expense.Amount)
	if input, err := a.prompt(ctx, "New Amount: $"); err != nil {
		return err
	} else if input != "" {
		m, err := core.ParseMoney(input)
		if err != nil {
			return err
		}
		upd.Amount = &m
	}

	if upd.IsEmpty() {
		fmt.Fprintln(a.out, "No changes provided. Nothing to update.")
		return nil
	}

	updated, err := a.store.UpdateExpense(ctx, id, upd)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Fprintln(a.out, "No changes were applied.")
		return nil
	}

	expense, err = a.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\nExpense updated successfully!")
	a.printExpense(expense)
	return nil
}

func (a *App) showSummaries(ctx context.Context) error {
	if err := a.reports.CategorySummary(ctx); err != nil {
		return err
	}
	return a.reports.MonthlySummary(ctx)
}

func (a *App) showCharts(ctx context.Context) error {
	stats, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.TotalExpenses == 0 {
		fmt.Fprintln(a.out, "No expense data available for charts.")
		return nil
	}

	for {
		fmt.Fprint(a.out, `
Chart Options:
1. Category Bar Chart
2. Monthly Bar Chart
3. Category Pie Chart
4. Daily Trend Chart
5. All Charts
0. Back to main menu
`)
		choice, err := a.prompt(ctx, "\nSelect chart option (0-5): ")
		if err != nil {
			return err
		}

		var chartErr error
		switch choice {
		case "0":
			return nil
		case "1":
			chartErr = a.renderCategoryBar(ctx)
		case "2":
			chartErr = a.renderMonthlyBar(ctx)
		case "3":
			chartErr = a.renderCategoryPie(ctx)
		case "4":
			chartErr = a.renderDailyTrend(ctx)
		case "5":
			fmt.Fprintln(a.out, "Generating all charts...")
			for _, render := range []func(context.Context) error{
				a.renderCategoryBar, a.renderMonthlyBar, a.renderCategoryPie, a.renderDailyTrend,
			} {
				if chartErr = render(ctx); chartErr != nil {
					break
				}
			}
		default:
			fmt.Fprintln(a.out, "Invalid option. Please try again.")
		}

		if err := a.reportError(chartErr); err != nil {
			return err
		}
	}
}

func (a *App) renderCategoryBar(ctx context.Context) error {
	totals, err := a.store.CategoryTotals(ctx)
	if err != nil {
		return err
	}
	return a.savedChart(a.charts.CategoryBar(totals))
}

func (a *App) renderMonthlyBar(ctx context.Context) error {
	totals, err := a.store.MonthlyTotals(ctx)
	if err != nil {
		return err
	}
	return a.savedChart(a.charts.MonthlyBar(totals))
}

func (a *App) renderCategoryPie(ctx context.Context) error {
	totals, err := a.store.CategoryTotals(ctx)
	if err != nil {
		return err
	}
	return a.savedChart(a.charts.CategoryPie(totals))
}

func (a *App) renderDailyTrend(ctx context.Context) error {
	expenses, err := a.store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	return a.savedChart(a.charts.DailyTrend(expenses, a.cfg.TrendDays))
}

func (a *App) savedChart(path string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Chart saved to: %s\n", path)
	return nil
}

func (a *App) exportCSV(ctx context.Context) error {
	path, err := a.prompt(ctx, "\nEnter output CSV path (or press Enter for default): ")
	if err != nil {
		return err
	}
	written, err := a.reports.ExportCSV(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nExport successful! File saved at: %s\n", written)
	return nil
}

func (a *App) exportSheets(ctx context.Context) error {
	if !a.cfg.SheetsConfigured() {
		fmt.Fprintln(a.out, "Google Sheets export is not configured. Set GOOGLE_SPREADSHEET_ID to enable it.")
		return nil
	}

	expenses, err := a.store.ListExpenses(ctx)
	if err != nil {
		return err
	}

	exporter, err := a.newExporter(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to initialize Google Sheets exporter", "error", err)
		fmt.Fprintf(a.out, "Could not initialize Google Sheets exporter: %v\n", err)
		return nil
	}

	ref, err := exporter.Export(ctx, expenses)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			return err
		}
		slog.ErrorContext(ctx, "Google Sheets export failed", "error", err)
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "\nExport successful! Rows written at: %s\n", ref)
	return nil
}

func (a *App) manageBudgets(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, `
BUDGETS
1. Set/Update Budget
2. View Budget Status
0. Back to main menu
`)
		choice, err := a.prompt(ctx, "\nSelect option (0-2): ")
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "0":
			return nil
		case "1":
			actionErr = a.setBudget(ctx)
		case "2":
			actionErr = a.budgetStatus(ctx)
		default:
			fmt.Fprintln(a.out, "Invalid option. Please try again.")
		}

		if err := a.reportError(actionErr); err != nil {
			return err
		}
	}
}

func (a *App) setBudget(ctx context.Context) error {
	category, err := a.prompt(ctx, "Category: ")
	if err != nil {
		return err
	}
	periodInput, err := a.prompt(ctx, "Period (weekly/monthly/yearly): ")
	if err != nil {
		return err
	}
	p, err := period.Parse(periodInput)
	if err != nil {
		return err
	}
	amountInput, err := a.prompt(ctx, "Budget amount: $")
	if err != nil {
		return err
	}
	amount, err := core.ParseMoney(amountInput)
	if err != nil {
		return err
	}

	if err := a.store.SetBudget(ctx, category, p, amount); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Budget saved.")
	return nil
}

func (a *App) budgetStatus(ctx context.Context) error {
	periodInput, err := a.prompt(ctx, "Period (weekly/monthly/yearly): ")
	if err != nil {
		return err
	}
	p, err := period.Parse(periodInput)
	if err != nil {
		return err
	}

	refInput, err := a.prompt(ctx, "Reference date YYYY-MM-DD (optional, Enter for today): ")
	if err != nil {
		return err
	}
	var ref core.Date
	if refInput != "" {
		if ref, err = core.ParseDate(refInput); err != nil {
			return err
		}
	}

	return a.reports.BudgetStatus(ctx, p, ref)
}

func (a *App) printExpense(e core.Expense) {
	fmt.Fprintf(a.out, "  ID: %d\n  Date: %s\n  Category: %s\n  Description: %s\n  Amount: $%s\n",
		e.ID, e.Date, e.Category, e.Description, e.Amount)
}

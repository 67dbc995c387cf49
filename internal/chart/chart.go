// Package chart renders expense aggregates to PNG files. It is handed
// pre-aggregated series by the caller and never touches the store.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"spendtrack/internal/core"
)

// ErrNoData means there is nothing to plot for the requested chart.
var ErrNoData = errors.New("no expense data available")

// Renderer writes chart images into a target directory, created on
// first use.
type Renderer struct {
	dir string
}

func New(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// CategoryBar renders a bar chart of spend per category and returns the
// written file path.
func (r *Renderer) CategoryBar(totals []core.CategoryTotal) (string, error) {
	if len(totals) == 0 {
		return "", ErrNoData
	}

	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{Label: t.Category, Value: t.Total.Float()})
	}

	graph := chart.BarChart{
		Title:      "Expenses by Category",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		Bars:       bars,
	}
	return r.render("category", graph.Render)
}

// MonthlyBar renders a bar chart of spend per month in chronological
// order.
func (r *Renderer) MonthlyBar(totals []core.MonthTotal) (string, error) {
	if len(totals) == 0 {
		return "", ErrNoData
	}

	sorted := make([]core.MonthTotal, len(totals))
	copy(sorted, totals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	bars := make([]chart.Value, 0, len(sorted))
	for _, t := range sorted {
		bars = append(bars, chart.Value{Label: t.Month, Value: t.Total.Float()})
	}

	graph := chart.BarChart{
		Title:      "Monthly Expenses",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		Bars:       bars,
	}
	return r.render("monthly", graph.Render)
}

// CategoryPie renders the category spend distribution as a pie chart.
func (r *Renderer) CategoryPie(totals []core.CategoryTotal) (string, error) {
	if len(totals) == 0 {
		return "", ErrNoData
	}

	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		values = append(values, chart.Value{Label: t.Category, Value: t.Total.Float()})
	}

	graph := chart.PieChart{
		Title:  "Expense Distribution by Category",
		Width:  768,
		Height: 768,
		Values: values,
	}
	return r.render("category_pie", graph.Render)
}

// DailyTrend renders a line chart of daily spend over the trailing
// window ending today. Expenses outside the window are ignored.
func (r *Renderer) DailyTrend(expenses []core.Expense, days int) (string, error) {
	end := core.Today()
	start := end.AddDays(-days)

	daily := make(map[string]core.Money)
	for _, e := range expenses {
		if e.Date.Before(start.Time) || e.Date.After(end.Time) {
			continue
		}
		daily[e.Date.String()] = daily[e.Date.String()].Add(e.Amount)
	}
	if len(daily) == 0 {
		return "", ErrNoData
	}

	keys := make([]string, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	xs := make([]time.Time, 0, len(keys))
	ys := make([]float64, 0, len(keys))
	for _, k := range keys {
		d := core.MustParseDate(k)
		xs = append(xs, d.Time)
		ys = append(ys, daily[k].Float())
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Daily Expense Trend (Last %d Days)", days),
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "daily total",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return r.render("trend", graph.Render)
}

func (r *Renderer) render(kind string, render func(chart.RendererProvider, io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create chart directory: %w", err)
	}
	path := filepath.Join(r.dir,
		fmt.Sprintf("%s_%s.png", kind, time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render %s chart: %w", kind, err)
	}
	return path, nil
}

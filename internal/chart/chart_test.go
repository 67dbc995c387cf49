package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendtrack/internal/core"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func checkPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart file: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatalf("chart file %s is not a PNG", path)
	}
}

func TestCategoryBar(t *testing.T) {
	r := New(t.TempDir())
	path, err := r.CategoryBar([]core.CategoryTotal{
		{Category: "Food", Total: core.Cents(7080)},
		{Category: "Transportation", Total: core.Cents(4320)},
	})
	if err != nil {
		t.Fatalf("category bar: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "category_") {
		t.Fatalf("unexpected file name %q", path)
	}
	checkPNG(t, path)
}

func TestMonthlyBar(t *testing.T) {
	r := New(t.TempDir())
	path, err := r.MonthlyBar([]core.MonthTotal{
		{Month: "2024-02", Total: core.Cents(500)},
		{Month: "2024-01", Total: core.Cents(300)},
	})
	if err != nil {
		t.Fatalf("monthly bar: %v", err)
	}
	checkPNG(t, path)
}

func TestCategoryPie(t *testing.T) {
	r := New(t.TempDir())
	path, err := r.CategoryPie([]core.CategoryTotal{
		{Category: "Food", Total: core.Cents(7080)},
		{Category: "Shopping", Total: core.Cents(12000)},
	})
	if err != nil {
		t.Fatalf("category pie: %v", err)
	}
	checkPNG(t, path)
}

func TestDailyTrend(t *testing.T) {
	r := New(t.TempDir())
	today := core.Today()
	expenses := []core.Expense{
		{Date: today, Category: "Food", Description: "a", Amount: core.Cents(1000)},
		{Date: today.AddDays(-1), Category: "Food", Description: "b", Amount: core.Cents(2000)},
		{Date: today.AddDays(-3), Category: "Food", Description: "c", Amount: core.Cents(500)},
		{Date: today.AddDays(-60), Category: "Food", Description: "too old", Amount: core.Cents(9999)},
	}
	path, err := r.DailyTrend(expenses, 30)
	if err != nil {
		t.Fatalf("daily trend: %v", err)
	}
	checkPNG(t, path)
}

func TestNoData(t *testing.T) {
	r := New(t.TempDir())

	if _, err := r.CategoryBar(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("category bar: expected ErrNoData, got %v", err)
	}
	if _, err := r.MonthlyBar(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("monthly bar: expected ErrNoData, got %v", err)
	}
	if _, err := r.CategoryPie(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("category pie: expected ErrNoData, got %v", err)
	}

	old := []core.Expense{
		{Date: core.Today().AddDays(-100), Category: "Food", Description: "x", Amount: core.Cents(100)},
	}
	if _, err := r.DailyTrend(old, 30); !errors.Is(err, ErrNoData) {
		t.Fatalf("daily trend: expected ErrNoData, got %v", err)
	}
}

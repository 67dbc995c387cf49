package memory

import (
	"context"
	"errors"
	"testing"

	"spendtrack/internal/core"
)

func TestExportRecordsSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()

	expenses := []core.Expense{
		{ID: 1, Date: core.MustParseDate("2024-01-15"), Category: "Food", Description: "Lunch", Amount: core.Cents(2550)},
	}

	ref, err := s.Export(ctx, expenses)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("expected ref mem:1, got %q", ref)
	}

	// Mutating the caller's slice must not change the snapshot.
	expenses[0].Description = "changed"

	got := s.Exports()
	if len(got) != 1 || len(got[0]) != 1 {
		t.Fatalf("expected one snapshot with one expense, got %+v", got)
	}
	if got[0][0].Description != "Lunch" {
		t.Fatalf("snapshot should be isolated from caller, got %q", got[0][0].Description)
	}
}

func TestExportEmpty(t *testing.T) {
	s := New()
	if _, err := s.Export(context.Background(), nil); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

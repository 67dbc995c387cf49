package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-15", true},
		{"2024-02-29", true}, // leap year
		{" 2024-01-15 ", true},
		{"2023-02-29", false}, // not a leap year
		{"2024-13-01", false},
		{"2024-01-32", false},
		{"2024-1-5", false},
		{"15/01/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q expected ok, got %v", tc.in, err)
			}
			if d.String() != "2024-01-15" && d.String() != "2024-02-29" {
				t.Fatalf("%q round-tripped to %q", tc.in, d.String())
			}
		} else {
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
			}
		}
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 1, 31)
	if got := d.AddDays(1).String(); got != "2024-02-01" {
		t.Fatalf("AddDays rollover: got %q", got)
	}
	if got := d.MonthKey(); got != "2024-01" {
		t.Fatalf("MonthKey: got %q", got)
	}
	if err := (Date{Time: time.Time{}}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("zero date expected ErrInvalidDate, got %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 1, 15),
		Category:    "Food",
		Description: "Lunch",
		Amount:      Cents(2550),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		e    Expense
		want error
	}{
		{"zero date", Expense{Category: "Food", Description: "x", Amount: Cents(1)}, ErrInvalidDate},
		{"empty category", Expense{Date: NewDate(2024, 1, 1), Category: "  ", Description: "x", Amount: Cents(1)}, ErrEmptyCategory},
		{"empty description", Expense{Date: NewDate(2024, 1, 1), Category: "Food", Amount: Cents(1)}, ErrEmptyDescription},
		{"zero amount", Expense{Date: NewDate(2024, 1, 1), Category: "Food", Description: "x"}, ErrInvalidAmount},
		{"negative amount", Expense{Date: NewDate(2024, 1, 1), Category: "Food", Description: "x", Amount: Cents(-5)}, ErrNegativeAmount},
	}
	for _, tc := range cases {
		err := tc.e.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput wrapping, got %v", tc.name, err)
		}
	}
}

func TestExpenseUpdateValidate(t *testing.T) {
	if !(ExpenseUpdate{}).IsEmpty() {
		t.Fatalf("zero update should be empty")
	}

	cat := "Food"
	if (ExpenseUpdate{Category: &cat}).IsEmpty() {
		t.Fatalf("update with category should not be empty")
	}

	empty := "  "
	if err := (ExpenseUpdate{Category: &empty}).Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("blank category expected ErrEmptyCategory, got %v", err)
	}
	if err := (ExpenseUpdate{Description: &empty}).Validate(); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("blank description expected ErrEmptyDescription, got %v", err)
	}

	bad := Cents(0)
	if err := (ExpenseUpdate{Amount: &bad}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount expected ErrInvalidAmount, got %v", err)
	}

	zero := Date{}
	if err := (ExpenseUpdate{Date: &zero}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("zero date expected ErrInvalidDate, got %v", err)
	}

	d := NewDate(2024, 3, 1)
	m := Cents(999)
	ok := ExpenseUpdate{Date: &d, Category: &cat, Amount: &m}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid update: got %v", err)
	}
}

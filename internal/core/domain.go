package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the storage and wire format for calendar dates.
const DateFormat = "2006-01-02"

// ErrInvalidInput is the root of every validation error. Callers use
// errors.Is(err, ErrInvalidInput) to tell user-correctable input apart
// from storage failures.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrInvalidDate      = fmt.Errorf("%w: date must be a valid YYYY-MM-DD date", ErrInvalidInput)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	ErrNegativeAmount   = fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	ErrEmptyCategory    = fmt.Errorf("%w: category cannot be empty", ErrInvalidInput)
	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", ErrInvalidInput)
)

type (
	// Date is a calendar date with day granularity, always at midnight UTC.
	Date struct {
		time.Time
	}

	// Expense is a single ledger entry.
	Expense struct {
		ID          int64
		Date        Date
		Category    string
		Description string
		Amount      Money
		CreatedAt   time.Time
	}

	// Budget is a spending limit for one (category, period) pair.
	// Period is always stored normalized to lowercase.
	Budget struct {
		ID       int64
		Category string
		Period   string
		Amount   Money
	}

	// ExpenseUpdate carries a partial update for an expense. A nil field
	// means "leave unchanged"; a set pointer means "overwrite", so an
	// explicit empty string is distinguishable from an omitted field.
	ExpenseUpdate struct {
		Date        *Date
		Category    *string
		Description *string
		Amount      *Money
	}
)

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a strict YYYY-MM-DD date. "2024-13-01" and
// "2023-02-29" are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// MustParseDate is like ParseDate but panics on error. For tests and
// fixed literals only.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(DateFormat)
}

// MonthKey returns the YYYY-MM truncation used by monthly aggregates.
func (d Date) MonthKey() string {
	return d.Time.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	return e.Amount.Validate()
}

// IsEmpty reports whether no field is set at all.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Date == nil && u.Category == nil && u.Description == nil && u.Amount == nil
}

// Validate checks each supplied field with the same rules as Expense.Validate,
// independently of which other fields are present.
func (u ExpenseUpdate) Validate() error {
	if u.Date != nil {
		if err := u.Date.Validate(); err != nil {
			return err
		}
	}
	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		return ErrEmptyCategory
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return ErrEmptyDescription
	}
	if u.Amount != nil {
		if err := u.Amount.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Package period maps a budget period and a reference date to the
// inclusive calendar range the period covers. It is pure: no clock is
// consulted unless the caller passes a zero reference date.
package period

import (
	"fmt"
	"strings"
	"time"

	"spendtrack/internal/core"
)

// Period is a recurring budget window.
type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ErrInvalidPeriod rejects any period name outside weekly/monthly/yearly.
var ErrInvalidPeriod = fmt.Errorf("%w: period must be one of weekly, monthly, yearly", core.ErrInvalidInput)

// Range is an inclusive span of calendar dates.
type Range struct {
	Start core.Date
	End   core.Date
}

// Parse normalizes a period name. Input is case-insensitive.
func Parse(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	default:
		return "", ErrInvalidPeriod
	}
}

func (p Period) String() string { return string(p) }

// Range computes the inclusive date range containing ref. A zero ref
// means today. Weeks start on Monday.
func (p Period) Range(ref core.Date) (Range, error) {
	if ref.IsZero() {
		ref = core.Today()
	}
	switch p {
	case Weekly:
		// time.Weekday has Sunday=0; shift so Monday=0.
		wd := (int(ref.Weekday()) + 6) % 7
		start := ref.AddDays(-wd)
		return Range{Start: start, End: start.AddDays(6)}, nil
	case Monthly:
		start := core.NewDate(ref.Year(), int(ref.Month()), 1)
		end := start.AddDays(daysIn(ref.Year(), ref.Month()) - 1)
		return Range{Start: start, End: end}, nil
	case Yearly:
		return Range{
			Start: core.NewDate(ref.Year(), 1, 1),
			End:   core.NewDate(ref.Year(), 12, 31),
		}, nil
	default:
		return Range{}, ErrInvalidPeriod
	}
}

// daysIn returns the number of days in a month. time.Date normalizes the
// zeroth day of the next month to the last day of this one, which also
// handles the December to January rollover.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether d falls inside the range, boundaries included.
func (r Range) Contains(d core.Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

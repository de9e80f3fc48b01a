package model

import (
	"fmt"
	"time"
)

// Period is a fiscal period with inclusive calendar bounds.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// NewPeriod builds a Period and its display label ("01/01/2025 al 31/12/2025").
func NewPeriod(start, end time.Time) Period {
	return Period{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s al %s", start.Format("02/01/2006"), end.Format("02/01/2006")),
	}
}

// ParsePeriod parses two YYYY-MM-DD strings into a Period.
func ParsePeriod(from, to string) (Period, error) {
	start, err := time.Parse(DateFormat, from)
	if err != nil {
		return Period{}, fmt.Errorf("parsing period start %q: %w", from, err)
	}
	end, err := time.Parse(DateFormat, to)
	if err != nil {
		return Period{}, fmt.Errorf("parsing period end %q: %w", to, err)
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("period end %s is before start %s", to, from)
	}
	return NewPeriod(start, end), nil
}

// FiscalYear returns the twelve-month period starting on the given month/day of year.
func FiscalYear(year int, startMonth time.Month, startDay int) Period {
	start := time.Date(year, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	return NewPeriod(start, start.AddDate(1, 0, -1))
}

// Before reports whether d falls strictly before the period start.
func (p Period) Before(d time.Time) bool {
	return dateOnly(d).Before(dateOnly(p.Start))
}

// Contains reports whether d falls within the period, bounds included.
func (p Period) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(p.Start)) && !day.After(dateOnly(p.End))
}

// UpToEnd reports whether d falls on or before the period end.
func (p Period) UpToEnd(d time.Time) bool {
	return !dateOnly(d).After(dateOnly(p.End))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

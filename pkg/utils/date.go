package utils

import (
	"fmt"
	"time"
)

// NewspaperName formats the deterministic daily-edition name for a date,
// e.g. "Friday, 8/29". The generating model's own name suggestion is
// intentionally ignored in favor of this format.
func NewspaperName(t time.Time) string {
	return fmt.Sprintf("%s, %d/%d", t.Weekday().String(), int(t.Month()), t.Day())
}

// DayKey formats a timestamp as the YYYY-MM-DD key used for daily usage
// counters.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

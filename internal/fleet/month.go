package fleet

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month, parsed from the literal YYYY-MM form.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses s as YYYY-MM. Any other shape is an invalid parameter.
func ParseMonth(s string) (Month, error) {
	if len(s) != len(monthLayout) {
		return Month{}, fmt.Errorf("%w: mes %q must use the YYYY-MM format", ErrInvalidParameter, s)
	}

	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: mes %q must use the YYYY-MM format", ErrInvalidParameter, s)
	}

	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month t falls in.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Range returns the half-open interval [start, end) covering the month.
func (m Month) Range() (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

package expense

import (
	"fmt"
	"strconv"
	"time"
)

// Filter selects expenses by owner and date range. Nil fields impose no
// constraint; set fields combine with logical AND.
type Filter struct {
	UserID    *string
	StartDate *time.Time
	EndDate   *time.Time
}

// String renders the filter for log context.
func (f Filter) String() string {
	if f.UserID == nil && f.StartDate == nil {
		return "unfiltered"
	}

	s := ""
	if f.UserID != nil {
		s = "user=" + *f.UserID
	}

	if f.StartDate != nil {
		if s != "" {
			s += " "
		}

		s += fmt.Sprintf("date=%s..%s",
			f.StartDate.Format(time.DateOnly), f.EndDate.Format(time.DateOnly))
	}

	return s
}

// ParseFilter builds a Filter from the optional userId and month ("YYYY-MM")
// request parameters. An empty parameter imposes no constraint. A malformed
// month token yields ErrInvalidFilter.
func ParseFilter(userID, month string) (Filter, error) {
	var f Filter

	if userID != "" {
		f.UserID = &userID
	}

	if month != "" {
		start, end, err := monthRange(month)
		if err != nil {
			return Filter{}, err
		}

		f.StartDate = &start
		f.EndDate = &end
	}

	return f, nil
}

// monthRange expands a "YYYY-MM" token into the inclusive UTC range covering
// that calendar month: [first instant of the month, 23:59:59 of its last
// day]. The end instant is derived from the start of the following month, so
// variable month lengths and leap years fall out of the calendar arithmetic.
func monthRange(token string) (time.Time, time.Time, error) {
	if len(token) != 7 || token[4] != '-' {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be formatted YYYY-MM, got %q", ErrInvalidFilter, token)
	}

	for _, i := range [...]int{0, 1, 2, 3, 5, 6} {
		if token[i] < '0' || token[i] > '9' {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be formatted YYYY-MM, got %q", ErrInvalidFilter, token)
		}
	}

	year, _ := strconv.Atoi(token[:4])

	month, _ := strconv.Atoi(token[5:])
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month component out of range in %q", ErrInvalidFilter, token)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	return start, end, nil
}

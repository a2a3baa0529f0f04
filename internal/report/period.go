package report

import (
	"errors"
	"fmt"
	"time"
)

// Period kinds accepted by the report endpoints
const (
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodCustom  = "custom"
)

// ErrInvalidPeriod is returned for an unknown period kind or a custom
// period with missing or malformed dates.
var ErrInvalidPeriod = errors.New("invalid report period")

// Period is a resolved reporting window. Start is inclusive, End
// exclusive.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// ResolvePeriod turns the period request parameters into a concrete
// date window. month, quarter and year align to the calendar unit
// containing now; custom requires explicit ISO start and end dates
// (the end date is included in the window).
func ResolvePeriod(period, startDate, endDate string, now time.Time) (Period, error) {
	if period == "" {
		period = PeriodMonth
	}
	loc := now.Location()

	switch period {
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Period{
			Label: start.Format("January 2006"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		}, nil

	case PeriodQuarter:
		q := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, loc)
		return Period{
			Label: fmt.Sprintf("Q%d %d", q+1, now.Year()),
			Start: start,
			End:   start.AddDate(0, 3, 0),
		}, nil

	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Period{
			Label: start.Format("2006"),
			Start: start,
			End:   start.AddDate(1, 0, 0),
		}, nil

	case PeriodCustom:
		if startDate == "" || endDate == "" {
			return Period{}, fmt.Errorf("%w: custom period requires startDate and endDate", ErrInvalidPeriod)
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: bad startDate %q", ErrInvalidPeriod, startDate)
		}
		end, err := time.ParseInLocation("2006-01-02", endDate, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: bad endDate %q", ErrInvalidPeriod, endDate)
		}
		if end.Before(start) {
			return Period{}, fmt.Errorf("%w: endDate before startDate", ErrInvalidPeriod)
		}
		return Period{
			Label: startDate + " to " + endDate,
			Start: start,
			End:   end.AddDate(0, 0, 1),
		}, nil
	}

	return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
}

// PreviousMonth returns the calendar month preceding the one
// containing now.
func PreviousMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	return Period{
		Label: start.Format("January 2006"),
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// monthsIn lists the first day of every calendar month the window
// touches, in order.
func monthsIn(p Period) []time.Time {
	var months []time.Time
	m := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, p.Start.Location())
	for m.Before(p.End) {
		months = append(months, m)
		m = m.AddDate(0, 1, 0)
	}
	return months
}

package accounting

import "time"

// Period is an inclusive [Start, End] date window used for balance queries.
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentMonthPeriod is [first of asOf's month, asOf].
func CurrentMonthPeriod(asOf time.Time) Period {
	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	return Period{Start: first, End: asOf}
}

// PreviousMonthPeriod is the full calendar month immediately preceding
// asOf's month, regardless of asOf's day.
func PreviousMonthPeriod(asOf time.Time) Period {
	firstOfCurrent := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
	firstOfPrevious := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, asOf.Location())
	return Period{Start: firstOfPrevious, End: lastOfPrevious}
}

// PriorYearEnd is December 31 of the year before asOf's year, the cut-off
// for the "last fiscal-year-end" cumulative balance.
func PriorYearEnd(asOf time.Time) time.Time {
	return time.Date(asOf.Year()-1, time.December, 31, 0, 0, 0, 0, asOf.Location())
}

// StartOfYear is January 1 of asOf's year, the origin for year-to-date
// figures such as net income.
func StartOfYear(asOf time.Time) time.Time {
	return time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
}

// FirstOfMonth truncates a date to the first day of its month.
func FirstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// MonthKey renders the yyyy-MM grouping key for a date.
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

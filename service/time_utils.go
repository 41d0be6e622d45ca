package service

import "time"

// CutoffHour is the platform's daily boundary in UTC (11:00 in Hong Kong).
// A ledger "day" runs from one cutoff to the next, not midnight to midnight.
const CutoffHour = 3

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return Day(time.Now())
}

// Tomorrow returns the calendar date after today. The rollforward engine
// keeps the ledger current through this date.
func Tomorrow() time.Time {
	return Today().AddDate(0, 0, 1)
}

// CutoffTime returns the cutoff timestamp of a calendar date, which is how
// checkpoint days are stored in the ledger partitions.
func CutoffTime(date time.Time) time.Time {
	date = date.UTC()
	return time.Date(date.Year(), date.Month(), date.Day(), CutoffHour, 0, 0, 0, time.UTC)
}

// SettlementDay attributes a bet's last status change to a ledger day: a
// timestamp at or after the cutoff hour belongs to the next calendar date.
func SettlementDay(ts time.Time) time.Time {
	ts = ts.UTC()
	threshold := CutoffTime(ts)
	if !ts.Before(threshold) {
		return Day(ts).AddDate(0, 0, 1)
	}
	return Day(ts)
}

// StartOfMonth returns the first calendar date of the timestamp's month.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonth returns the first calendar date of the following month.
func AddMonth(monthStart time.Time) time.Time {
	return StartOfMonth(monthStart).AddDate(0, 1, 0)
}

// SubtractMonth returns the first calendar date of the preceding month.
func SubtractMonth(monthStart time.Time) time.Time {
	return StartOfMonth(monthStart).AddDate(0, -1, 0)
}

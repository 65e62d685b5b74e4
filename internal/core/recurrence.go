package core

import "time"

// NextDueDate returns the first occurrence of a recurring transaction
// strictly after now, stepping from the start date by the interval.
// Occurrences are anchored to the original start date, so a monthly
// entry started on the 31st falls on the last day of shorter months
// instead of drifting. A start date still in the future is itself the
// next due date. The zero time is returned for an unknown interval.
func NextDueDate(start time.Time, interval RecurrenceInterval, now time.Time) time.Time {
	switch interval {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return time.Time{}
	}

	due := start
	for n := 1; !due.After(now); n++ {
		switch interval {
		case Daily:
			due = start.AddDate(0, 0, n)
		case Weekly:
			due = start.AddDate(0, 0, 7*n)
		case Monthly:
			due = addMonthsClamped(start, n)
		case Yearly:
			due = addMonthsClamped(start, 12*n)
		}
	}
	return due
}

// addMonthsClamped advances by whole months, clamping the day to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	lastDay := time.Date(y, m+time.Month(months)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, t.Location())
}

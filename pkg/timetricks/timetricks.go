package timetricks

import (
	"time"
)

const hoursPerDay = 24

// TrimClock returns t with its wall clock removed, i.e. midnight of the
// same calendar day.
func TrimClock(t time.Time) time.Time {
	h, m, s := t.Clock()
	return t.Add(-1 *
		(time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second))
}

// DaysFrom re-expresses t as a signed fractional count of days from
// ref. Times before ref are negative.
func DaysFrom(t, ref time.Time) float64 {
	return t.Sub(ref).Hours() / hoursPerDay
}

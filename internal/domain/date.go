package domain

import "time"

// DateLayout is the calendar-day format used throughout the engine.
const DateLayout = "2006-01-02"

// Date is a calendar day ("2006-01-02"). Activity records carry a Date —
// the logical day they count toward — separate from their creation
// timestamp, so backdated entries land on the right day.
type Date string

// DateOf returns the Date for a point in time (local calendar day).
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// Time parses the date back to midnight local time.
// Returns the zero time for a malformed date.
func (d Date) Time() time.Time {
	t, err := time.ParseInLocation(DateLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// IsZero reports whether the date is empty.
func (d Date) IsZero() bool { return d == "" }

// Valid reports whether the date parses as "2006-01-02".
func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

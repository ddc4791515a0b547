package util

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today formats the current UTC calendar date.
func Today() string {
	return NowUTC().Format(DateLayout)
}

// DisplayDate renders a wire date as M/D/YYYY, returning the input unchanged when it
// cannot be parsed.
func DisplayDate(date string) string {
	ts, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return ts.Format("1/2/2006")
}

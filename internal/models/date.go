// ABOUTME: Calendar-day helpers shared by day records and health samples.
// ABOUTME: Dates are ISO YYYY-MM-DD strings in local time.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for every day key.
const DateLayout = "2006-01-02"

// ParseDate validates an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate returns the day key for t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns today's day key.
func Today() string {
	return FormatDate(time.Now())
}

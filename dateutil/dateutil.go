// Package dateutil holds the identifier and calendar helpers shared by the
// store, the renderer and the forms.
package dateutil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO calendar date layout used for week boundaries
const DateLayout = "2006-01-02"

var swedishMonths = [12]string{
	"januari", "februari", "mars", "april", "maj", "juni",
	"juli", "augusti", "september", "oktober", "november", "december",
}

// GenerateID returns a new opaque unique identifier
func GenerateID() string {
	return uuid.NewString()
}

// Timestamp formats t as an RFC 3339 UTC timestamp for createdAt fields
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// WeekDates returns the Monday and Sunday of the week containing t.
// Sunday closes the week that started on the previous Monday.
func WeekDates(t time.Time) (start, end string) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}

// ParseDate accepts a YYYY-MM-DD date or an RFC 3339 timestamp
func ParseDate(date string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, date); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// FormatDate renders the long Swedish form, e.g. "4 mars 2024".
// Unparsable input is returned unchanged.
func FormatDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return strconv.Itoa(t.Day()) + " " + swedishMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatDateShort renders the numeric Swedish form, e.g. "2024-03-04".
// Unparsable input is returned unchanged.
func FormatDateShort(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(DateLayout)
}

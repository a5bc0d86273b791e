// internal/app/system/mailer/dateformat.go
package mailer

import (
	"fmt"
	"time"
)

// FormatEventDate renders a date as "Monday, January 2nd, 2006" — long
// weekday and month with an ordinal day suffix, matching the confirmation
// emails the frontend shows dates alongside.
func FormatEventDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %s, %d",
		t.Weekday().String(),
		t.Month().String(),
		ordinalDay(t.Day()),
		t.Year())
}

func ordinalDay(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
		// 11th, 12th, 13th
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// FormatEventTime converts a 24-hour "15:04" clock string to "3:04 PM".
// Unparseable input is returned unchanged so a malformed event field never
// blocks a confirmation email.
func FormatEventTime(clock string) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

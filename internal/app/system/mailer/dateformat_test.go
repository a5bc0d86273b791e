package mailer

import (
	"testing"
	"time"
)

func TestFormatEventDate(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"first", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), "Sunday, March 1st, 2026"},
		{"second", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), "Monday, March 2nd, 2026"},
		{"third", time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), "Tuesday, March 3rd, 2026"},
		{"fourth", time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), "Wednesday, March 4th, 2026"},
		{"eleventh", time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), "Wednesday, March 11th, 2026"},
		{"twelfth", time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC), "Thursday, March 12th, 2026"},
		{"thirteenth", time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC), "Friday, March 13th, 2026"},
		{"twenty-first", time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC), "Saturday, March 21st, 2026"},
		{"thirty-first", time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "Tuesday, March 31st, 2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatEventDate(tc.date); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatEventTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"18:00", "6:00 PM"},
		{"09:30", "9:30 AM"},
		{"00:00", "12:00 AM"},
		{"12:00", "12:00 PM"},
		{"23:59", "11:59 PM"},
		{"not a time", "not a time"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatEventTime(tc.in); got != tc.want {
			t.Errorf("FormatEventTime(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

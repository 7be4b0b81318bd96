package booking

import (
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeDate accepts YYYY-MM-DD and returns it unchanged when valid.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return d.Format(DateLayout), true
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM.
func NormalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), true
		}
	}
	return "", false
}

// ScheduledAt combines a stored date and time in loc.
func ScheduledAt(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
}

// HasElapsed reports whether the slot starting at date/hm is not after now.
// Unparsable values never count as elapsed.
func HasElapsed(date, hm string, now time.Time) bool {
	at, err := ScheduledAt(date, hm, now.Location())
	if err != nil {
		return false
	}
	return !at.After(now)
}

// EffectiveStatus applies the auto-completion rule: a non-terminal booking
// whose scheduled time has passed is completed.
func EffectiveStatus(current Status, date, hm string, now time.Time) Status {
	if current.IsTerminal() {
		return current
	}
	if HasElapsed(date, hm, now) {
		return StatusCompleted
	}
	return current
}

// Cutoff returns the date and time strings used to select elapsed bookings in SQL.
func Cutoff(now time.Time) (date, hm string) {
	return now.Format(DateLayout), now.Format(TimeLayout)
}

package logic

import "time"

// Validate reports whether hour and minute form a valid time of day.
func Validate(hour, minute uint32) bool {
	return hour <= 23 && minute <= 59
}

// Sanitize converts raw register values into an AlarmTime.
// Out-of-range values yield DefaultAlarm and corrupt=true.
func Sanitize(hour, minute uint32) (alarm AlarmTime, corrupt bool) {
	if !Validate(hour, minute) {
		return DefaultAlarm, true
	}
	return AlarmTime{Hour: uint8(hour), Minute: uint8(minute)}, false
}

// Increment advances the field selected by b, wrapping at 24 hours or 60 minutes.
func (a AlarmTime) Increment(b Button) AlarmTime {
	switch b {
	case HourButton:
		a.Hour = (a.Hour + 1) % 24
	case MinuteButton:
		a.Minute = (a.Minute + 1) % 60
	}
	return a
}

// NextOccurrence returns the first instant strictly after now whose time of
// day is a.Hour:a.Minute:00 in now's location. Only the time of day is
// matched; the date rolls forward as needed.
func NextOccurrence(now time.Time, a AlarmTime) time.Time {
	y, m, d := now.Date()
	next := time.Date(y, m, d, int(a.Hour), int(a.Minute), 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, int(a.Hour), int(a.Minute), 0, 0, now.Location())
	}
	return next
}

// Package rtc provides access to the battery-backed real-time clock and its
// wake alarm. The RTC keeps UTC; the alarm clock treats that as local time.
package rtc

import (
	"context"
	"time"
)

// Clock reads and sets the RTC and programs its wake alarm.
type Clock interface {
	// Now returns the current RTC time.
	Now(ctx context.Context) (time.Time, error)

	// Set writes t to the RTC.
	Set(ctx context.Context, t time.Time) error

	// SetWakeAlarm programs the single wake alarm to fire at t, replacing
	// any previous alarm.
	SetWakeAlarm(ctx context.Context, at time.Time) error
}

// ColdBootTime is the time the RTC is reset to on a cold boot.
var ColdBootTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

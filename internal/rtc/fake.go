package rtc

import (
	"context"
	"sync"
	"time"
)

// Fake is an in-memory Clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time

	// Alarms records every programmed wake alarm, in order.
	Alarms []time.Time

	// NowError, SetError and AlarmError are returned by the matching call when set.
	NowError   error
	SetError   error
	AlarmError error
}

// NewFake creates a Fake reading now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the fake time.
func (f *Fake) Now(_ context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NowError != nil {
		return time.Time{}, f.NowError
	}
	return f.now, nil
}

// Set replaces the fake time.
func (f *Fake) Set(_ context.Context, t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.now = t
	return nil
}

// SetWakeAlarm records the alarm.
func (f *Fake) SetWakeAlarm(_ context.Context, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AlarmError != nil {
		return f.AlarmError
	}
	f.Alarms = append(f.Alarms, at)
	return nil
}

// Advance moves the fake time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// LastAlarm returns the most recently programmed alarm.
func (f *Fake) LastAlarm() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Alarms) == 0 {
		return time.Time{}, false
	}
	return f.Alarms[len(f.Alarms)-1], true
}

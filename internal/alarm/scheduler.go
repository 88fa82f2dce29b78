// Package alarm implements the alarm-time scheduler, the wake-time ring
// session and the button input handler.
package alarm

import (
	"context"
	"fmt"

	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/rtc"
	"github.com/sweeney/alarm-clock/internal/store"
)

// Scheduler validates, persists and programs the daily alarm.
type Scheduler struct {
	store store.Store
	clock rtc.Clock
}

// NewScheduler creates a Scheduler persisting to s and programming c.
func NewScheduler(s store.Store, c rtc.Clock) *Scheduler {
	return &Scheduler{store: s, clock: c}
}

// Validate reports whether hour:minute is a valid alarm time.
func (s *Scheduler) Validate(hour, minute uint32) bool {
	return logic.Validate(hour, minute)
}

// Arm persists a and programs the RTC wake alarm for the next occurrence of
// a.Hour:a.Minute:00. Invalid values are rejected with logic.ErrInvalidAlarmTime
// before anything is written. Arm is idempotent.
func (s *Scheduler) Arm(ctx context.Context, a logic.AlarmTime) error {
	if !s.Validate(uint32(a.Hour), uint32(a.Minute)) {
		return fmt.Errorf("arm %02d:%02d: %w", a.Hour, a.Minute, logic.ErrInvalidAlarmTime)
	}

	// The two slots are not written atomically. A failed minute write leaves
	// the new hour beside the old minute; the caller halts on that error.
	if err := s.store.Write(ctx, store.SlotAlarmHour, uint32(a.Hour)); err != nil {
		return fmt.Errorf("persist alarm hour: %w", err)
	}
	if err := s.store.Write(ctx, store.SlotAlarmMinute, uint32(a.Minute)); err != nil {
		return fmt.Errorf("persist alarm minute: %w", err)
	}

	now, err := s.clock.Now(ctx)
	if err != nil {
		return fmt.Errorf("read clock: %w", err)
	}
	at := logic.NextOccurrence(now, a)
	if err := s.clock.SetWakeAlarm(ctx, at); err != nil {
		return fmt.Errorf("program wake alarm: %w", err)
	}

	logger.DebugKV(ctx, "alarm armed", "alarm", a.String(), "fires_at", at)
	return nil
}

// Load reads the persisted alarm time. A corrupt value is replaced by
// logic.DefaultAlarm; only storage faults are returned as errors.
func (s *Scheduler) Load(ctx context.Context) (logic.AlarmTime, error) {
	hour, err := s.store.Read(ctx, store.SlotAlarmHour)
	if err != nil {
		return logic.AlarmTime{}, fmt.Errorf("read alarm hour: %w", err)
	}
	minute, err := s.store.Read(ctx, store.SlotAlarmMinute)
	if err != nil {
		return logic.AlarmTime{}, fmt.Errorf("read alarm minute: %w", err)
	}

	a, corrupt := logic.Sanitize(hour, minute)
	if corrupt {
		logger.WarnKV(ctx, "persisted alarm corrupt, using default",
			"hour", hour, "minute", minute, "default", a.String())
	}
	return a, nil
}

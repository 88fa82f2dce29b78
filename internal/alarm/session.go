package alarm

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeney/alarm-clock/internal/display"
	"github.com/sweeney/alarm-clock/internal/gpio"
	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/rtc"
)

// Hold occupies the calling goroutine for d. The ring is the only activity
// while the alarm fires and is not cancellable, so this ignores any context.
func Hold(d time.Duration) {
	time.Sleep(d)
}

// Session is the fixed sequence run once per alarm wake: show the time,
// ring for logic.RingDuration, re-arm for the next day.
type Session struct {
	Clock     rtc.Clock
	Display   display.Driver
	Buzzer    gpio.Buzzer
	Scheduler *Scheduler

	// Hold blocks for the ring duration. Nil means the package Hold.
	Hold func(time.Duration)
}

// Run executes the session and returns the alarm time it re-armed.
// Any error is a hardware fault; the sequence is not retried.
func (s *Session) Run(ctx context.Context) (logic.AlarmTime, error) {
	now, err := s.Clock.Now(ctx)
	if err != nil {
		return logic.AlarmTime{}, fmt.Errorf("read clock: %w", err)
	}

	if err := s.Display.Init(); err != nil {
		return logic.AlarmTime{}, err
	}
	if err := s.Display.Clear(); err != nil {
		return logic.AlarmTime{}, err
	}
	if err := s.Display.WriteTime(uint8(now.Hour()), uint8(now.Minute()), uint8(now.Second())); err != nil {
		return logic.AlarmTime{}, err
	}

	if err := s.ring(ctx); err != nil {
		return logic.AlarmTime{}, err
	}

	a, err := s.Scheduler.Load(ctx)
	if err != nil {
		return logic.AlarmTime{}, err
	}
	if err := s.Scheduler.Arm(ctx, a); err != nil {
		return logic.AlarmTime{}, err
	}
	return a, nil
}

func (s *Session) ring(ctx context.Context) error {
	hold := s.Hold
	if hold == nil {
		hold = Hold
	}

	if err := s.Buzzer.Set(true); err != nil {
		return fmt.Errorf("buzzer on: %w", err)
	}
	logger.InfoKV(ctx, "ringing", "duration", logic.RingDuration)
	hold(logic.RingDuration)
	if err := s.Buzzer.Set(false); err != nil {
		return fmt.Errorf("buzzer off: %w", err)
	}
	return nil
}

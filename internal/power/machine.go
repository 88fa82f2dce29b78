package power

import (
	"context"
	"time"

	"github.com/sweeney/alarm-clock/internal/alarm"
	"github.com/sweeney/alarm-clock/internal/display"
	"github.com/sweeney/alarm-clock/internal/gpio"
	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/mqtt"
	"github.com/sweeney/alarm-clock/internal/rtc"
	"github.com/sweeney/alarm-clock/internal/status"
	"github.com/sweeney/alarm-clock/internal/store"
)

// FlushTimeout bounds how long standby entry waits for queued events.
const FlushTimeout = 2 * time.Second

// Machine runs the device from Booting until it enters Standby.
// It is single-threaded: all state lives in one logic.Context owned by Run.
type Machine struct {
	Store     store.Store
	Clock     rtc.Clock
	Display   display.Driver
	Buttons   gpio.Buttons
	Scheduler *alarm.Scheduler
	Session   *alarm.Session
	Input     *alarm.InputHandler
	Sleeper   Sleeper

	// Publisher and Tracker are optional.
	Publisher mqtt.Publisher
	Tracker   *status.Tracker

	// Now timestamps published events. Nil means time.Now.
	Now func() time.Time

	dev logic.Context
}

// Context returns the current device context.
// It must not be called concurrently with Run.
func (m *Machine) Context() logic.Context {
	return m.dev
}

// Run leaves Booting according to marker and drives the device until it
// enters Standby or ctx is cancelled. The marker must already have been
// cleared by DetectWake. Every returned error is a *HardwareFault.
//
// tick drives the Active loop; in production it is a one-second ticker.
func (m *Machine) Run(ctx context.Context, marker logic.WakeMarker, tick <-chan time.Time) error {
	m.dev = logic.NewContext().Boot(marker)
	m.track()

	if m.dev.State == logic.StateAlarmFiring {
		return m.runAlarm(ctx)
	}
	if err := m.coldBoot(ctx); err != nil {
		return err
	}
	return m.loop(ctx, tick)
}

func (m *Machine) runAlarm(ctx context.Context) error {
	logger.InfoKV(ctx, "alarm wake")

	a, err := m.Session.Run(ctx)
	if err != nil {
		return fault("alarm session", err)
	}
	m.dev = m.dev.WithAlarm(a)
	m.publish(ctx, logic.EventAlarmFired)

	return m.enterStandby(ctx, false)
}

func (m *Machine) coldBoot(ctx context.Context) error {
	logger.InfoKV(ctx, "cold boot", "rtc", rtc.ColdBootTime)

	if err := m.Clock.Set(ctx, rtc.ColdBootTime); err != nil {
		return fault("reset clock", err)
	}
	a, err := m.Scheduler.Load(ctx)
	if err != nil {
		return fault("load alarm", err)
	}
	if err := m.Scheduler.Arm(ctx, a); err != nil {
		return fault("arm alarm", err)
	}
	m.dev = m.dev.WithAlarm(a)

	if err := m.Display.Init(); err != nil {
		return fault("init display", err)
	}
	if err := m.Display.Clear(); err != nil {
		return fault("clear display", err)
	}
	if err := m.refresh(ctx); err != nil {
		return err
	}

	m.track()
	m.publish(ctx, logic.EventColdBoot)
	return nil
}

func (m *Machine) loop(ctx context.Context, tick <-chan time.Time) error {
	events := m.Buttons.Events()

	for {
		select {
		case <-ctx.Done():
			logger.InfoKV(ctx, "stopping", "state", m.dev.State)
			return nil

		case b := <-events:
			if err := m.press(ctx, b); err != nil {
				return err
			}

		case <-tick:
			// Presses that arrived before this tick count as interaction.
			if err := m.drain(ctx, events); err != nil {
				return err
			}
			if err := m.refresh(ctx); err != nil {
				return err
			}

			var sleep bool
			m.dev, sleep = m.dev.Tick()
			m.track()
			if sleep {
				logger.InfoKV(ctx, "idle timeout", "ticks", logic.IdleThreshold)
				return m.enterStandby(ctx, true)
			}
		}
	}
}

func (m *Machine) drain(ctx context.Context, events <-chan logic.Button) error {
	for {
		select {
		case b := <-events:
			if err := m.press(ctx, b); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (m *Machine) press(ctx context.Context, b logic.Button) error {
	prev := m.dev.Alarm

	next, err := m.Input.Apply(ctx, m.dev, b)
	if err != nil {
		return fault("apply "+b.String()+" button", err)
	}
	m.dev = next
	m.track()

	if m.dev.Alarm != prev {
		m.publish(ctx, logic.EventAlarmSet)
	}
	return m.refresh(ctx)
}

// refresh redraws the time line and, when requested, the alarm line.
func (m *Machine) refresh(ctx context.Context) error {
	now, err := m.Clock.Now(ctx)
	if err != nil {
		return fault("read clock", err)
	}
	if err := m.Display.WriteTime(uint8(now.Hour()), uint8(now.Minute()), uint8(now.Second())); err != nil {
		return fault("draw time", err)
	}

	if !m.dev.NeedsRefresh {
		return nil
	}
	if err := m.Display.WriteAlarm(m.dev.Alarm.Hour, m.dev.Alarm.Minute); err != nil {
		return fault("draw alarm", err)
	}
	m.dev = m.dev.Refreshed()
	return nil
}

// enterStandby sets the wake marker and powers down. displayOff blanks
// the panel first; the alarm path leaves the time on screen.
func (m *Machine) enterStandby(ctx context.Context, displayOff bool) error {
	m.dev = m.dev.Sleep()
	m.track()
	m.publish(ctx, logic.EventStandby)
	if m.Publisher != nil {
		if err := m.Publisher.Flush(FlushTimeout); err != nil {
			logger.WarnKV(ctx, "event flush incomplete", "error", err)
		}
	}

	if displayOff {
		if err := m.Display.Off(); err != nil {
			return fault("display off", err)
		}
	}
	if err := m.Store.Write(ctx, store.SlotWakeMarker, logic.MarkerAlarmWake.Bits()); err != nil {
		return fault("set wake marker", err)
	}

	logger.InfoKV(ctx, "entering standby", "alarm", m.dev.Alarm.String())
	if err := m.Sleeper.Sleep(ctx); err != nil {
		return fault("enter standby", err)
	}
	return nil
}

func (m *Machine) publish(ctx context.Context, t logic.EventType) {
	if m.Publisher == nil {
		return
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	event := logic.Event{
		Timestamp: now(),
		Type:      t,
		State:     m.dev.State,
		Alarm:     m.dev.Alarm,
	}
	if err := m.Publisher.Publish(event); err != nil {
		// Publishing never affects the device.
		logger.WarnKV(ctx, "publish failed", "event", string(t), "error", err)
	}
}

func (m *Machine) track() {
	if m.Tracker != nil {
		m.Tracker.Update(m.dev)
	}
}

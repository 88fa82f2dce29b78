// Package logic contains the pure state model of the alarm clock.
// This package has NO external dependencies (no GPIO, I2C, RTC, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"errors"
	"fmt"
	"time"
)

const (
	// IdleThreshold is the number of consecutive one-second ticks without
	// interaction after which an Active device enters Standby.
	IdleThreshold = 30

	// RingDuration is how long the buzzer sounds when the alarm fires.
	RingDuration = 10 * time.Second

	// TickInterval is the main loop period while Active.
	TickInterval = time.Second
)

// DefaultAlarm replaces a missing or corrupt persisted alarm time.
var DefaultAlarm = AlarmTime{Hour: 8, Minute: 0}

// ErrInvalidAlarmTime is returned when an hour or minute is out of range.
var ErrInvalidAlarmTime = errors.New("invalid alarm time")

// AlarmTime is the configured daily wake time.
type AlarmTime struct {
	Hour   uint8
	Minute uint8
}

func (a AlarmTime) String() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
}

// State is the device power state.
type State string

const (
	StateBooting     State = "BOOTING"
	StateActive      State = "ACTIVE"
	StateAlarmFiring State = "ALARM_FIRING"
	StateStandby     State = "STANDBY"
)

// WakeMarker records whether the last standby entry armed an alarm wake.
type WakeMarker uint8

const (
	MarkerNone WakeMarker = iota
	MarkerAlarmWake
)

// Raw register patterns for WakeMarker. Anything other than
// markerAlarmWakeBits decodes as MarkerNone.
const (
	markerNoneBits      uint32 = 0x0000
	markerAlarmWakeBits uint32 = 0xA5A5
)

// Bits returns the register encoding of the marker.
func (m WakeMarker) Bits() uint32 {
	if m == MarkerAlarmWake {
		return markerAlarmWakeBits
	}
	return markerNoneBits
}

// DecodeMarker converts a raw register value into a WakeMarker.
func DecodeMarker(bits uint32) WakeMarker {
	if bits == markerAlarmWakeBits {
		return MarkerAlarmWake
	}
	return MarkerNone
}

func (m WakeMarker) String() string {
	if m == MarkerAlarmWake {
		return "ALARM_WAKE"
	}
	return "NONE"
}

// Button identifies which adjustment button produced an edge.
type Button uint8

const (
	HourButton Button = iota + 1
	MinuteButton
)

func (b Button) String() string {
	switch b {
	case HourButton:
		return "HOUR"
	case MinuteButton:
		return "MINUTE"
	default:
		return "UNKNOWN"
	}
}

// EventType is a device lifecycle event worth reporting.
type EventType string

const (
	EventColdBoot   EventType = "COLD_BOOT"
	EventAlarmFired EventType = "ALARM_FIRED"
	EventAlarmSet   EventType = "ALARM_SET"
	EventStandby    EventType = "STANDBY"
)

// Event is a lifecycle event to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
	Alarm     AlarmTime
}

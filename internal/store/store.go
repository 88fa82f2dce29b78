// Package store provides the retained register slots that survive standby.
// The real implementation uses the battery-backed NVRAM of the RTC chip.
// The fake implementation allows testing without hardware.
package store

import (
	"context"
	"errors"
)

// Slot addresses one retained register.
type Slot uint8

const (
	SlotWakeMarker Slot = iota
	SlotAlarmHour
	SlotAlarmMinute

	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotWakeMarker:
		return "wake_marker"
	case SlotAlarmHour:
		return "alarm_hour"
	case SlotAlarmMinute:
		return "alarm_minute"
	default:
		return "unknown"
	}
}

// ErrUnknownSlot is returned for a slot outside the register file.
var ErrUnknownSlot = errors.New("store: unknown slot")

// Store reads and writes retained registers.
// Each Write is atomic for its slot. Registers read 0 after a true power loss.
type Store interface {
	Read(ctx context.Context, slot Slot) (uint32, error)
	Write(ctx context.Context, slot Slot, value uint32) error
}

func checkSlot(s Slot) error {
	if s >= slotCount {
		return ErrUnknownSlot
	}
	return nil
}

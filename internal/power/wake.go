// Package power owns the device power states: wake detection, the Active
// polling loop, the alarm path and standby entry.
package power

import (
	"context"

	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/store"
)

// DetectWake reads the wake marker and clears it before returning, so a
// later reset without a fresh standby entry can never replay the alarm.
// It must run before any other peripheral is touched.
func DetectWake(ctx context.Context, s store.Store) (logic.WakeMarker, error) {
	raw, err := s.Read(ctx, store.SlotWakeMarker)
	if err != nil {
		return logic.MarkerNone, fault("read wake marker", err)
	}
	if err := s.Write(ctx, store.SlotWakeMarker, logic.MarkerNone.Bits()); err != nil {
		return logic.MarkerNone, fault("clear wake marker", err)
	}

	m := logic.DecodeMarker(raw)
	if m == logic.MarkerNone && raw != logic.MarkerNone.Bits() {
		logger.WarnKV(ctx, "unrecognised wake marker, treating as cold boot", "raw", raw)
	}
	logger.InfoKV(ctx, "wake detected", "marker", m.String())
	return m, nil
}

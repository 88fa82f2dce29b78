package logic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func activeContext(t *testing.T) Context {
	t.Helper()
	c := NewContext().Boot(MarkerNone)
	require.Equal(t, StateActive, c.State)
	require.Zero(t, c.IdleTicks)
	return c
}

func TestBootColdGoesActive(t *testing.T) {
	c := NewContext().Boot(MarkerNone)
	require.Equal(t, StateActive, c.State)
	require.True(t, c.NeedsRefresh)
}

func TestBootAlarmWakeGoesFiring(t *testing.T) {
	c := NewContext().Boot(MarkerAlarmWake)
	require.Equal(t, StateAlarmFiring, c.State)
}

func TestBootOnlyFromBooting(t *testing.T) {
	c := activeContext(t).Boot(MarkerAlarmWake)
	require.Equal(t, StateActive, c.State)
}

func TestIdleTimeoutAfterExactlyThreshold(t *testing.T) {
	c := activeContext(t)

	var sleep bool
	for i := 1; i < IdleThreshold; i++ {
		c, sleep = c.Tick()
		require.False(t, sleep, "tick %d", i)
		require.Equal(t, StateActive, c.State)
		require.Equal(t, i, c.IdleTicks)
	}

	c, sleep = c.Tick()
	require.True(t, sleep)
	require.Equal(t, StateStandby, c.State)
}

func TestInteractionResetsIdle(t *testing.T) {
	c := activeContext(t)

	var sleep bool
	for i := 1; i < IdleThreshold-1; i++ {
		c, _ = c.Tick()
	}
	require.Equal(t, IdleThreshold-2, c.IdleTicks)

	// Interaction observed during tick 29.
	c = c.Touch()
	c, sleep = c.Tick()
	require.False(t, sleep)
	require.Zero(t, c.IdleTicks)

	// Ticks 30..58 keep the device awake.
	for i := 0; i < IdleThreshold-1; i++ {
		c, sleep = c.Tick()
		require.False(t, sleep)
	}
	require.Equal(t, StateActive, c.State)

	c, sleep = c.Tick()
	require.True(t, sleep)
	require.Equal(t, StateStandby, c.State)
}

func TestTickIgnoredOutsideActive(t *testing.T) {
	c := NewContext().Boot(MarkerAlarmWake)
	for i := 0; i < IdleThreshold*2; i++ {
		var sleep bool
		c, sleep = c.Tick()
		require.False(t, sleep)
	}
	require.Equal(t, StateAlarmFiring, c.State)
	require.Zero(t, c.IdleTicks)
}

func TestTouchAfterStandbyIsIgnored(t *testing.T) {
	c := activeContext(t).Sleep()
	c = c.Touch()
	require.Equal(t, StateStandby, c.State)
	require.False(t, c.Interacted)
}

func TestRefreshed(t *testing.T) {
	c := activeContext(t).Touch()
	require.True(t, c.NeedsRefresh)
	c = c.Refreshed()
	require.False(t, c.NeedsRefresh)
}

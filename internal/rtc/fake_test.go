package rtc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeClock(t *testing.T) {
	ctx := context.Background()
	f := NewFake(ColdBootTime)

	now, err := f.Now(ctx)
	require.NoError(t, err)
	require.Equal(t, ColdBootTime, now)

	f.Advance(90 * time.Second)
	now, err = f.Now(ctx)
	require.NoError(t, err)
	require.Equal(t, ColdBootTime.Add(90*time.Second), now)

	_, ok := f.LastAlarm()
	require.False(t, ok)

	at := ColdBootTime.Add(8 * time.Hour)
	require.NoError(t, f.SetWakeAlarm(ctx, at))
	last, ok := f.LastAlarm()
	require.True(t, ok)
	require.Equal(t, at, last)
}

func TestFakeClockErrors(t *testing.T) {
	ctx := context.Background()
	f := NewFake(ColdBootTime)
	f.AlarmError = errors.New("i2c nak")

	require.EqualError(t, f.SetWakeAlarm(ctx, ColdBootTime), "i2c nak")
	require.Empty(t, f.Alarms)
}

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakeReadWrite(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	v, err := f.Read(ctx, SlotAlarmHour)
	require.NoError(t, err)
	require.Zero(t, v, "fresh registers read zero")

	require.NoError(t, f.Write(ctx, SlotAlarmHour, 7))
	require.NoError(t, f.Write(ctx, SlotAlarmMinute, 30))

	v, err = f.Read(ctx, SlotAlarmHour)
	require.NoError(t, err)
	require.Equal(t, uint32(7), v)

	require.Equal(t, []Write{
		{Slot: SlotAlarmHour, Value: 7},
		{Slot: SlotAlarmMinute, Value: 30},
	}, f.Writes)
}

func TestFakeUnknownSlot(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	_, err := f.Read(ctx, Slot(9))
	require.ErrorIs(t, err, ErrUnknownSlot)
	require.ErrorIs(t, f.Write(ctx, Slot(9), 1), ErrUnknownSlot)
}

func TestFakeErrors(t *testing.T) {
	ctx := context.Background()
	f := NewFake()
	f.WriteError = errors.New("bus fault")

	require.EqualError(t, f.Write(ctx, SlotWakeMarker, 1), "bus fault")
	require.Empty(t, f.Writes)

	f.Reset()
	require.NoError(t, f.Write(ctx, SlotWakeMarker, 1))
}

func TestFakePowerLoss(t *testing.T) {
	ctx := context.Background()
	f := NewFake()
	require.NoError(t, f.Write(ctx, SlotAlarmHour, 6))

	f.PowerLoss()

	v, err := f.Read(ctx, SlotAlarmHour)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestFakeOnWrite(t *testing.T) {
	var seen []Write
	f := NewFake()
	f.OnWrite = func(w Write) { seen = append(seen, w) }

	require.NoError(t, f.Write(context.Background(), SlotWakeMarker, 0))
	require.Equal(t, []Write{{Slot: SlotWakeMarker, Value: 0}}, seen)
}

func newNVMemFile(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nvmem")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
	return path
}

func TestNVMemRoundtrip(t *testing.T) {
	ctx := context.Background()
	path := newNVMemFile(t, 56)

	n, err := OpenNVMem(path, 8)
	require.NoError(t, err)

	for h := uint32(0); h < 24; h++ {
		require.NoError(t, n.Write(ctx, SlotAlarmHour, h))
		got, err := n.Read(ctx, SlotAlarmHour)
		require.NoError(t, err)
		require.Equal(t, h, got)
	}
	require.NoError(t, n.Write(ctx, SlotWakeMarker, 0xA5A5))
	require.NoError(t, n.Close())

	// Values survive reopening, like a standby cycle.
	n, err = OpenNVMem(path, 8)
	require.NoError(t, err)
	defer n.Close()

	got, err := n.Read(ctx, SlotWakeMarker)
	require.NoError(t, err)
	require.Equal(t, uint32(0xA5A5), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0xA5, 0xA5, 0x00, 0x00}, raw[8:12], "marker is little-endian at the base offset")
}

func TestNVMemErrors(t *testing.T) {
	_, err := OpenNVMem(filepath.Join(t.TempDir(), "missing"), 0)
	require.Error(t, err)

	_, err = OpenNVMem(newNVMemFile(t, 4), -1)
	require.Error(t, err)

	// Too small for the minute slot.
	n, err := OpenNVMem(newNVMemFile(t, 4), 0)
	require.NoError(t, err)
	defer n.Close()

	_, err = n.Read(context.Background(), SlotAlarmMinute)
	require.Error(t, err)
}

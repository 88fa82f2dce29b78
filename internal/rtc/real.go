//go:build linux

package rtc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultDevice is the first RTC character device.
const DefaultDevice = "/dev/rtc0"

// Device is a Linux RTC driven through the rtc ioctl interface.
type Device struct {
	f *os.File
}

// Open opens the RTC character device at path.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open rtc: %w", err)
	}
	return &Device{f: f}, nil
}

// Now reads the RTC.
func (d *Device) Now(_ context.Context) (time.Time, error) {
	rt, err := unix.IoctlGetRTCTime(int(d.f.Fd()))
	if err != nil {
		return time.Time{}, fmt.Errorf("read rtc time: %w", err)
	}
	return fromRTCTime(rt), nil
}

// Set writes t (converted to UTC) to the RTC.
func (d *Device) Set(_ context.Context, t time.Time) error {
	rt := toRTCTime(t)
	if err := unix.IoctlSetRTCTime(int(d.f.Fd()), &rt); err != nil {
		return fmt.Errorf("set rtc time: %w", err)
	}
	return nil
}

// SetWakeAlarm arms the RTC wake alarm at t.
func (d *Device) SetWakeAlarm(_ context.Context, at time.Time) error {
	alarm := unix.RTCWkAlrm{
		Enabled: 1,
		Time:    toRTCTime(at),
	}
	if err := unix.IoctlSetRTCWkAlrm(int(d.f.Fd()), &alarm); err != nil {
		return fmt.Errorf("set rtc wake alarm: %w", err)
	}
	return nil
}

// Close releases the RTC device.
func (d *Device) Close() error {
	return d.f.Close()
}

func toRTCTime(t time.Time) unix.RTCTime {
	t = t.UTC()
	return unix.RTCTime{
		Sec:   int32(t.Second()),
		Min:   int32(t.Minute()),
		Hour:  int32(t.Hour()),
		Mday:  int32(t.Day()),
		Mon:   int32(t.Month()) - 1,
		Year:  int32(t.Year()) - 1900,
		Wday:  int32(t.Weekday()),
		Yday:  int32(t.YearDay()) - 1,
		Isdst: 0,
	}
}

func fromRTCTime(rt *unix.RTCTime) time.Time {
	return time.Date(
		int(rt.Year)+1900,
		time.Month(rt.Mon+1),
		int(rt.Mday),
		int(rt.Hour),
		int(rt.Min),
		int(rt.Sec),
		0,
		time.UTC,
	)
}

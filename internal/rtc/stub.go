//go:build !linux

package rtc

import (
	"context"
	"errors"
	"time"
)

// DefaultDevice is the first RTC character device.
const DefaultDevice = "/dev/rtc0"

var errUnsupported = errors.New("rtc: not supported on this platform (requires Linux)")

// Device is not available on non-Linux platforms.
type Device struct{}

// Open returns an error on non-Linux platforms.
func Open(string) (*Device, error) {
	return nil, errUnsupported
}

// Now is not implemented on non-Linux platforms.
func (d *Device) Now(context.Context) (time.Time, error) {
	return time.Time{}, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (d *Device) Set(context.Context, time.Time) error {
	return errUnsupported
}

// SetWakeAlarm is not implemented on non-Linux platforms.
func (d *Device) SetWakeAlarm(context.Context, time.Time) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (d *Device) Close() error {
	return nil
}

//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/alarm-clock/internal/logic"
)

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(string, int, int) (*RealButtons, error) {
	return nil, errUnsupported
}

// Events returns nil on non-Linux platforms.
func (b *RealButtons) Events() <-chan logic.Button {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error {
	return nil
}

// RealBuzzer is not available on non-Linux platforms.
type RealBuzzer struct{}

// NewRealBuzzer returns an error on non-Linux platforms.
func NewRealBuzzer(string, int) (*RealBuzzer, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (b *RealBuzzer) Set(bool) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (b *RealBuzzer) Close() error {
	return nil
}

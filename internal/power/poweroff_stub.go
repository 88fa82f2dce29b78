//go:build !linux

package power

import (
	"context"
	"errors"
)

// PowerOff is not supported on non-Linux platforms.
type PowerOff struct{}

// Sleep returns an error on non-Linux platforms.
func (PowerOff) Sleep(context.Context) error {
	return errors.New("power off: not supported on this platform")
}

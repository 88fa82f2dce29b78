// Package gpio provides the button inputs and buzzer output with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/alarm-clock/internal/logic"

// Buttons delivers edge events from the hour and minute buttons.
type Buttons interface {
	// Events returns the channel button presses are delivered on.
	// The producer never blocks: a press is dropped if the channel is full.
	Events() <-chan logic.Button

	// Close stops edge detection and releases the lines.
	// No events are delivered after Close returns.
	Close() error
}

// Buzzer drives the buzzer output line.
type Buzzer interface {
	// Set drives the buzzer on (true) or off (false).
	Set(on bool) error

	// Close releases the line, leaving the buzzer off.
	Close() error
}

// Line offsets on gpiochip0 (BCM numbering).
const (
	DefaultChip      = "gpiochip0"
	DefaultPinHour   = 17
	DefaultPinMinute = 27
	DefaultPinBuzzer = 22
)

// EventBuffer is the capacity of the button event channel.
const EventBuffer = 16

// offer performs the non-blocking send used from edge callbacks.
func offer(ch chan<- logic.Button, b logic.Button) bool {
	select {
	case ch <- b:
		return true
	default:
		return false
	}
}

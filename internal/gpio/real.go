//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// RealButtons watches the two button lines for falling edges using the
// Linux GPIO character device. Edge callbacks run on the gpiocdev watcher
// goroutine and only hand the event to the channel.
type RealButtons struct {
	ch     chan logic.Button
	hour   *gpiocdev.Line
	minute *gpiocdev.Line

	mu     sync.Mutex
	closed bool
}

// NewRealButtons requests the hour and minute lines on chip as inputs with
// pull-up, reporting falling edges (button pressed to ground).
func NewRealButtons(chip string, pinHour, pinMinute int) (*RealButtons, error) {
	b := &RealButtons{ch: make(chan logic.Button, EventBuffer)}

	hour, err := gpiocdev.RequestLine(chip, pinHour,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(b.handler(logic.HourButton)))
	if err != nil {
		return nil, fmt.Errorf("request hour button pin %d: %w", pinHour, err)
	}

	minute, err := gpiocdev.RequestLine(chip, pinMinute,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(b.handler(logic.MinuteButton)))
	if err != nil {
		hour.Close()
		return nil, fmt.Errorf("request minute button pin %d: %w", pinMinute, err)
	}

	b.hour = hour
	b.minute = minute
	return b, nil
}

func (b *RealButtons) handler(btn logic.Button) gpiocdev.EventHandler {
	return func(gpiocdev.LineEvent) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		offer(b.ch, btn)
	}
}

// Events returns the button event channel.
func (b *RealButtons) Events() <-chan logic.Button {
	return b.ch
}

// Close stops edge detection and releases both lines.
func (b *RealButtons) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	var errs []error
	if b.hour != nil {
		if err := b.hour.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close hour pin: %w", err))
		}
	}
	if b.minute != nil {
		if err := b.minute.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close minute pin: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealBuzzer drives the buzzer through an output line.
type RealBuzzer struct {
	line *gpiocdev.Line
}

// NewRealBuzzer requests pin on chip as an output, initially off.
func NewRealBuzzer(chip string, pin int) (*RealBuzzer, error) {
	line, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}
	return &RealBuzzer{line: line}, nil
}

// Set drives the buzzer line.
func (b *RealBuzzer) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := b.line.SetValue(v); err != nil {
		return fmt.Errorf("set buzzer: %w", err)
	}
	return nil
}

// Close turns the buzzer off and releases the line.
func (b *RealBuzzer) Close() error {
	var errs []error
	if err := b.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("silence buzzer: %w", err))
	}
	if err := b.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

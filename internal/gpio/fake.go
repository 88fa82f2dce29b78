package gpio

import (
	"sync"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// FakeButtons is a test double whose presses are injected by the test.
type FakeButtons struct {
	ch chan logic.Button

	mu     sync.Mutex
	closed bool

	// Dropped counts presses lost because the channel was full.
	Dropped int
}

// NewFakeButtons creates FakeButtons with the standard event buffer.
func NewFakeButtons() *FakeButtons {
	return &FakeButtons{ch: make(chan logic.Button, EventBuffer)}
}

// Press simulates an edge on the given button. It never blocks.
func (f *FakeButtons) Press(b logic.Button) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if !offer(f.ch, b) {
		f.Dropped++
	}
}

// Events returns the event channel.
func (f *FakeButtons) Events() <-chan logic.Button {
	return f.ch
}

// Close stops delivering presses.
func (f *FakeButtons) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Closed reports whether Close was called.
func (f *FakeButtons) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FakeBuzzer records buzzer output changes.
type FakeBuzzer struct {
	// States contains every value passed to Set, in order.
	States []bool

	// SetError, if set, is returned by Set.
	SetError error

	// OnSet, if set, is called for every successful Set.
	OnSet func(on bool)

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBuzzer creates a silent FakeBuzzer.
func NewFakeBuzzer() *FakeBuzzer {
	return &FakeBuzzer{}
}

// Set records the new output level.
func (f *FakeBuzzer) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, on)
	if f.OnSet != nil {
		f.OnSet(on)
	}
	return nil
}

// On reports the last level written.
func (f *FakeBuzzer) On() bool {
	return len(f.States) > 0 && f.States[len(f.States)-1]
}

// Close marks the buzzer as closed.
func (f *FakeBuzzer) Close() error {
	f.Closed = true
	return nil
}

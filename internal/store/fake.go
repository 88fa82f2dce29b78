package store

import (
	"context"
	"sync"
)

// Write is one recorded register write.
type Write struct {
	Slot  Slot
	Value uint32
}

// Fake is an in-memory Store that records every write.
type Fake struct {
	mu   sync.Mutex
	regs [slotCount]uint32

	// Writes is the journal of successful writes, in order.
	Writes []Write

	// ReadError and WriteError, if set, are returned by Read and Write.
	ReadError  error
	WriteError error

	// OnWrite, if set, is called after each successful write.
	OnWrite func(Write)
}

// NewFake creates a Fake with all registers at zero (fresh power-up).
func NewFake() *Fake {
	return &Fake{}
}

// Read returns the value of slot.
func (f *Fake) Read(_ context.Context, slot Slot) (uint32, error) {
	if err := checkSlot(slot); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return f.regs[slot], nil
}

// Write stores value in slot.
func (f *Fake) Write(_ context.Context, slot Slot, value uint32) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	f.mu.Lock()
	if f.WriteError != nil {
		f.mu.Unlock()
		return f.WriteError
	}
	f.regs[slot] = value
	w := Write{Slot: slot, Value: value}
	f.Writes = append(f.Writes, w)
	hook := f.OnWrite
	f.mu.Unlock()

	if hook != nil {
		hook(w)
	}
	return nil
}

// Set seeds a register without recording a write.
func (f *Fake) Set(slot Slot, value uint32) {
	f.mu.Lock()
	f.regs[slot] = value
	f.mu.Unlock()
}

// Get returns a register without going through Read.
func (f *Fake) Get(slot Slot) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[slot]
}

// PowerLoss simulates the backup domain losing power.
func (f *Fake) PowerLoss() {
	f.mu.Lock()
	f.regs = [slotCount]uint32{}
	f.mu.Unlock()
}

// Reset clears recorded writes and injected errors, keeping register values.
func (f *Fake) Reset() {
	f.mu.Lock()
	f.Writes = nil
	f.ReadError = nil
	f.WriteError = nil
	f.mu.Unlock()
}

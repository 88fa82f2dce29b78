package display

import (
	"fmt"
	"sync"
)

// Tx is one recorded bus transaction.
type Tx struct {
	Addr uint16
	W    []byte
}

// RecordingBus implements drivers.I2C and records every write.
type RecordingBus struct {
	mu  sync.Mutex
	Txs []Tx

	// Err, if set, is returned by Tx.
	Err error
}

// Tx records the write.
func (b *RecordingBus) Tx(addr uint16, w, _ []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.Txs = append(b.Txs, Tx{Addr: addr, W: append([]byte(nil), w...)})
	return nil
}

// Fake is a Driver that records operations as short strings,
// e.g. "init", "clear", "time 00:00:01", "alarm 08:00", "off".
type Fake struct {
	mu  sync.Mutex
	Ops []string

	// Err, if set, is returned by every operation.
	Err error

	// OnOp, if set, is called with every recorded operation.
	OnOp func(op string)
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) record(op string) error {
	f.mu.Lock()
	if f.Err != nil {
		f.mu.Unlock()
		return f.Err
	}
	f.Ops = append(f.Ops, op)
	hook := f.OnOp
	f.mu.Unlock()
	if hook != nil {
		hook(op)
	}
	return nil
}

func (f *Fake) Init() error  { return f.record("init") }
func (f *Fake) Clear() error { return f.record("clear") }
func (f *Fake) Off() error   { return f.record("off") }

func (f *Fake) WriteTime(hour, minute, second uint8) error {
	return f.record(fmt.Sprintf("time %02d:%02d:%02d", hour, minute, second))
}

func (f *Fake) WriteAlarm(hour, minute uint8) error {
	return f.record(fmt.Sprintf("alarm %02d:%02d", hour, minute))
}

// Last returns the most recent operation, or "" if none.
func (f *Fake) Last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Ops) == 0 {
		return ""
	}
	return f.Ops[len(f.Ops)-1]
}

// Times returns the recorded time draws in order.
func (f *Fake) Times() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, op := range f.Ops {
		if len(op) > 5 && op[:5] == "time " {
			out = append(out, op[5:])
		}
	}
	return out
}

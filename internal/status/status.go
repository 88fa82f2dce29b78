// Package status provides a thread-safe status tracker for the alarm clock.
// It is read by the MQTT system events and by --print-state.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	GPIOChip  string
	HourPin   int
	MinutePin int
	BuzzerPin int
	I2CBus    string
	Broker    string
}

// Registers is a raw dump of the retained register slots.
type Registers struct {
	WakeMarker  uint32
	AlarmHour   uint32
	AlarmMinute uint32
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	State         logic.State
	Alarm         logic.AlarmTime
	Wake          logic.WakeMarker
	IdleTicks     int
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Registers     *Registers
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.StateBooting,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update copies the state machine context.
// Called by the power machine after every transition and tick.
func (t *Tracker) Update(c logic.Context) {
	t.mu.Lock()
	t.snap.State = c.State
	t.snap.Alarm = c.Alarm
	t.snap.IdleTicks = c.IdleTicks
	t.mu.Unlock()
}

// SetWake records the wake marker read at boot.
func (t *Tracker) SetWake(m logic.WakeMarker) {
	t.mu.Lock()
	t.snap.Wake = m
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetRegisters attaches a raw register dump.
func (t *Tracker) SetRegisters(r *Registers) {
	t.mu.Lock()
	t.snap.Registers = r
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

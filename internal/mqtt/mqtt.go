// Package mqtt publishes alarm clock lifecycle events, with abstraction for testing.
// Publishing is outbound only and never affects the state machine.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// Topic is the MQTT topic for device lifecycle events.
const Topic = "home/alarm-clock/events"

// TopicSystem is the MQTT topic for process lifecycle events.
const TopicSystem = "home/alarm-clock/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a device event. Errors are logged by the caller, never fatal.
	Publish(event logic.Event) error

	// PublishSystem sends a process lifecycle event.
	PublishSystem(event SystemEvent) error

	// Flush waits up to timeout for queued messages to be delivered.
	// Called before the board powers off.
	Flush(timeout time.Duration) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a process lifecycle event (STARTUP, SHUTDOWN).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool
}

// Payload is the MQTT message payload for device events.
type Payload struct {
	AlarmClock EventPayload `json:"alarm_clock"`
}

// EventPayload contains the device event details.
type EventPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	State     string `json:"state"`
	Alarm     string `json:"alarm"`
}

// FormatPayload creates the JSON payload for a device event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		AlarmClock: EventPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			State:     string(event.State),
			Alarm:     event.Alarm.String(),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT payload for simple system events without a status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

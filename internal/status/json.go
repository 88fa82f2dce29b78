package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string         `json:"event,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	State         string         `json:"state"`
	Alarm         string         `json:"alarm"`
	Wake          string         `json:"wake"`
	IdleTicks     int            `json:"idle_ticks"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	StartTime     string         `json:"start_time"`
	Timestamp     string         `json:"timestamp"`
	MQTT          MQTTStatus     `json:"mqtt"`
	Registers     *RegistersJSON `json:"registers,omitempty"`
	Config        ConfigJSON     `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// RegistersJSON is the JSON representation of the retained registers.
type RegistersJSON struct {
	WakeMarker  uint32 `json:"wake_marker"`
	AlarmHour   uint32 `json:"alarm_hour"`
	AlarmMinute uint32 `json:"alarm_minute"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	GPIOChip  string `json:"gpio_chip"`
	HourPin   int    `json:"hour_pin"`
	MinutePin int    `json:"minute_pin"`
	BuzzerPin int    `json:"buzzer_pin"`
	I2CBus    string `json:"i2c_bus,omitempty"`
	Broker    string `json:"broker,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	inner := StatusInner{
		State:         state,
		Alarm:         snap.Alarm.String(),
		Wake:          snap.Wake.String(),
		IdleTicks:     snap.IdleTicks,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			GPIOChip:  snap.Config.GPIOChip,
			HourPin:   snap.Config.HourPin,
			MinutePin: snap.Config.MinutePin,
			BuzzerPin: snap.Config.BuzzerPin,
			I2CBus:    snap.Config.I2CBus,
			Broker:    snap.Config.Broker,
		},
	}
	if r := snap.Registers; r != nil {
		inner.Registers = &RegistersJSON{
			WakeMarker:  r.WakeMarker,
			AlarmHour:   r.AlarmHour,
			AlarmMinute: r.AlarmMinute,
		}
	}
	return inner
}

// FormatJSON returns the indented JSON status for --print-state (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{GPIOChip: "gpiochip0", HourPin: 17, MinutePin: 27, BuzzerPin: 22, Broker: "tcp://localhost:1883"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.HourPin != 17 {
		t.Errorf("Config.HourPin: got %d, want 17", snap.Config.HourPin)
	}
	if snap.State != logic.StateBooting {
		t.Errorf("State: got %q, want BOOTING", snap.State)
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
	if snap.Registers != nil {
		t.Error("expected nil Registers initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	c := logic.Context{State: logic.StateActive, Alarm: logic.AlarmTime{Hour: 6, Minute: 45}, IdleTicks: 12}
	tr.Update(c)
	tr.SetWake(logic.MarkerAlarmWake)

	snap := tr.Snapshot()
	if snap.State != logic.StateActive {
		t.Errorf("State: got %q, want ACTIVE", snap.State)
	}
	if snap.Alarm != c.Alarm {
		t.Errorf("Alarm: got %v, want %v", snap.Alarm, c.Alarm)
	}
	if snap.IdleTicks != 12 {
		t.Errorf("IdleTicks: got %d, want 12", snap.IdleTicks)
	}
	if snap.Wake != logic.MarkerAlarmWake {
		t.Errorf("Wake: got %v, want ALARM_WAKE", snap.Wake)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(logic.Context{State: logic.StateActive, IdleTicks: 3})

	snap1 := tr.Snapshot()

	tr.Update(logic.Context{State: logic.StateStandby, IdleTicks: 30})

	// snap1 should still reflect old state
	if snap1.State != logic.StateActive {
		t.Error("snapshot should be a copy; State was modified")
	}
	if snap1.IdleTicks != 3 {
		t.Error("snapshot should be a copy; IdleTicks was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:         logic.StateActive,
		Alarm:         logic.AlarmTime{Hour: 7, Minute: 5},
		IdleTicks:     4,
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{GPIOChip: "gpiochip0", HourPin: 17, MinutePin: 27, BuzzerPin: 22, Broker: "tcp://localhost:1883"},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.State != "ACTIVE" {
		t.Errorf("State: got %q, want ACTIVE", parsed.Status.State)
	}
	if parsed.Status.Alarm != "07:05" {
		t.Errorf("Alarm: got %q, want 07:05", parsed.Status.Alarm)
	}
	if parsed.Status.Wake != "NONE" {
		t.Errorf("Wake: got %q, want NONE", parsed.Status.Wake)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
	if !parsed.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if parsed.Status.Config.BuzzerPin != 22 {
		t.Errorf("Config.BuzzerPin: got %d, want 22", parsed.Status.Config.BuzzerPin)
	}
	if parsed.Status.Event != "" || parsed.Status.Reason != "" {
		t.Errorf("expected no event/reason, got %q/%q", parsed.Status.Event, parsed.Status.Reason)
	}
	if parsed.Status.Registers != nil {
		t.Error("expected registers to be omitted")
	}
}

func TestFormatJSONUnknownState(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	var parsed StatusJSON
	json.Unmarshal(FormatJSON(snap), &parsed)

	if parsed.Status.State != "UNKNOWN" {
		t.Errorf("State: got %q, want UNKNOWN", parsed.Status.State)
	}
}

func TestFormatJSONWithRegisters(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC),
		Registers: &Registers{WakeMarker: 0xA5A5, AlarmHour: 99, AlarmMinute: 7},
	}

	var parsed StatusJSON
	json.Unmarshal(FormatJSON(snap), &parsed)

	if parsed.Status.Registers == nil {
		t.Fatal("expected Registers in JSON")
	}
	if parsed.Status.Registers.WakeMarker != 0xA5A5 {
		t.Errorf("WakeMarker: got %#x, want 0xa5a5", parsed.Status.Registers.WakeMarker)
	}
	if parsed.Status.Registers.AlarmHour != 99 {
		t.Errorf("AlarmHour: got %d, want 99", parsed.Status.Registers.AlarmHour)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:     logic.StateStandby,
		StartTime: start,
		Now:       start.Add(30 * time.Second),
		Config:    Config{Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("Event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("Reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
	if parsed.Status.State != "STANDBY" {
		t.Errorf("State: got %q, want STANDBY", parsed.Status.State)
	}
	if parsed.Status.UptimeSeconds != 30 {
		t.Errorf("UptimeSeconds: got %d, want 30", parsed.Status.UptimeSeconds)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	status := raw["status"].(map[string]interface{})
	if _, exists := status["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if status["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", status["event"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Update(logic.Context{State: logic.StateActive, IdleTicks: i % 30})
			tr.SetMQTTConnected(i%2 == 0)
			tr.SetWake(logic.MarkerNone)
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
		}
	}()

	wg.Wait()
}

package logic

// Context is the complete mutable device state. It is created once at boot
// and owned by the power state machine; transitions return a new value.
type Context struct {
	State State
	Alarm AlarmTime

	// IdleTicks counts one-second ticks since the last interaction while Active.
	IdleTicks int

	// Interacted is set by a button event and consumed by the next tick.
	Interacted bool

	// NeedsRefresh asks the main loop to redraw the display.
	NeedsRefresh bool
}

// NewContext returns the context for a device that has just powered up.
func NewContext() Context {
	return Context{State: StateBooting, Alarm: DefaultAlarm}
}

// Boot leaves Booting based on the wake marker read at startup.
func (c Context) Boot(marker WakeMarker) Context {
	if c.State != StateBooting {
		return c
	}
	if marker == MarkerAlarmWake {
		c.State = StateAlarmFiring
		return c
	}
	c.State = StateActive
	c.IdleTicks = 0
	c.NeedsRefresh = true
	return c
}

// WithAlarm replaces the alarm time. Callers validate before calling.
func (c Context) WithAlarm(a AlarmTime) Context {
	c.Alarm = a
	return c
}

// Touch records a user interaction. Any pending standby is cancelled.
func (c Context) Touch() Context {
	if c.State == StateStandby || c.State == StateBooting {
		return c
	}
	c.State = StateActive
	c.Interacted = true
	c.NeedsRefresh = true
	return c
}

// Tick advances the idle counter by one second. It reports whether the
// device must now enter standby.
func (c Context) Tick() (Context, bool) {
	if c.State != StateActive {
		return c, false
	}
	if c.Interacted {
		c.Interacted = false
		c.IdleTicks = 0
		return c, false
	}
	c.IdleTicks++
	if c.IdleTicks >= IdleThreshold {
		c.State = StateStandby
		return c, true
	}
	return c, false
}

// Refreshed clears the display refresh request.
func (c Context) Refreshed() Context {
	c.NeedsRefresh = false
	return c
}

// Sleep moves the device to Standby unconditionally.
func (c Context) Sleep() Context {
	c.State = StateStandby
	c.Interacted = false
	c.NeedsRefresh = false
	return c
}

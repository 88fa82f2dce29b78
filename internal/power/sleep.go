package power

import "context"

// Sleeper enters the lowest power state. On real hardware a successful
// Sleep does not return to the caller in any meaningful way: the board
// powers off and the next RTC alarm boots it from scratch.
type Sleeper interface {
	Sleep(ctx context.Context) error
}

// FakeSleeper records standby entries.
type FakeSleeper struct {
	// Calls counts Sleep invocations.
	Calls int

	// Err, if set, is returned by Sleep.
	Err error

	// OnSleep, if set, is called for every Sleep.
	OnSleep func()
}

// Sleep records the call.
func (f *FakeSleeper) Sleep(context.Context) error {
	f.Calls++
	if f.OnSleep != nil {
		f.OnSleep()
	}
	return f.Err
}

// Command alarm-clock runs the standby alarm clock: it decides on boot
// whether to ring or to wake into the adjustable clock face, then powers
// the board off with the RTC alarm armed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/sweeney/alarm-clock/internal/alarm"
	"github.com/sweeney/alarm-clock/internal/config"
	"github.com/sweeney/alarm-clock/internal/display"
	"github.com/sweeney/alarm-clock/internal/gpio"
	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/mqtt"
	"github.com/sweeney/alarm-clock/internal/power"
	"github.com/sweeney/alarm-clock/internal/rtc"
	"github.com/sweeney/alarm-clock/internal/status"
	"github.com/sweeney/alarm-clock/internal/store"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// printState dumps the retained registers and exits.
	printState bool

	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Run the standby alarm clock.",
		Long: `Runs the alarm clock on a Linux board with a wake-capable RTC.

On an alarm wake the clock shows the time, rings for 10 seconds, re-arms for
the next day and powers off. On any other boot the RTC is reset, the alarm
can be adjusted with the hour and minute buttons, and the board powers off
after 30 seconds without a press.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := notifyContext(context.Background())
			defer stop()

			return run(ctx, configPath, printState)
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&printState, "print-state", false, "print the retained registers and exit")
}

// signalError is the cancellation cause recorded when a signal arrives.
type signalError struct {
	sig os.Signal
}

func (e signalError) Error() string {
	return "received " + e.sig.String()
}

// notifyContext is signal.NotifyContext that keeps the signal as the cause.
func notifyContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case s := <-sigCh:
			cancel(signalError{sig: s})
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel(nil)
	}
}

func shutdownReason(ctx context.Context) string {
	var se signalError
	if errors.As(context.Cause(ctx), &se) {
		switch se.sig {
		case syscall.SIGINT:
			return "SIGINT"
		case syscall.SIGTERM:
			return "SIGTERM"
		}
	}
	return "UNKNOWN"
}

func run(ctx context.Context, path string, printOnly bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// The retained registers come first: the wake marker must be read and
	// cleared before any other peripheral is touched.
	nv, err := store.OpenNVMem(cfg.NVMemPath, cfg.NVMemOffset)
	if err != nil {
		return power.Halt(ctx, &power.HardwareFault{Op: "open nvmem", Err: err})
	}
	defer nv.Close()

	tracker := status.NewTracker(time.Now(), statusConfig(cfg))

	if printOnly {
		return printRegisters(ctx, os.Stdout, nv, tracker)
	}

	marker, err := power.DetectWake(ctx, nv)
	if err != nil {
		return power.Halt(ctx, err)
	}
	tracker.SetWake(marker)
	ctx = logger.With(ctx, "wake", marker.String())

	hw, err := openHardware(cfg)
	if err != nil {
		return power.Halt(ctx, err, hw.closers()...)
	}

	d := &daemon{
		tracker: tracker,
		now:     time.Now,
	}
	if cfg.Broker != "" {
		pub := mqtt.NewRealPublisher(cfg.Broker)
		defer pub.Close()
		d.publisher = pub
		d.mqttStatus = pub
	}

	sched := alarm.NewScheduler(nv, hw.clock)
	screen := display.New(hw.bus)
	d.machine = &power.Machine{
		Store:     nv,
		Clock:     hw.clock,
		Display:   screen,
		Buttons:   hw.buttons,
		Scheduler: sched,
		Session: &alarm.Session{
			Clock:     hw.clock,
			Display:   screen,
			Buzzer:    hw.buzzer,
			Scheduler: sched,
		},
		Input:     &alarm.InputHandler{Scheduler: sched},
		Sleeper:   power.PowerOff{},
		Publisher: d.publisher,
		Tracker:   tracker,
	}

	logger.InfoKV(ctx, "started",
		"wake", marker.String(),
		"chip", cfg.GPIOChip,
		"i2c", cfg.I2CBus,
		"rtc", cfg.RTCDevice,
		"broker", cfg.Broker)

	ticker := time.NewTicker(logic.TickInterval)
	defer ticker.Stop()

	err = serve(ctx, d, marker, ticker.C)

	var hf *power.HardwareFault
	if errors.As(err, &hf) {
		return power.Halt(ctx, err, hw.closers()...)
	}
	closeAll(ctx, hw.closers())
	return err
}

// daemon is the wired device plus its optional reporting side.
type daemon struct {
	machine    *power.Machine
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker

	now func() time.Time
}

// serve runs the machine and reports the process lifecycle around it.
// Hardware faults are returned unreported; the caller halts.
func serve(ctx context.Context, d *daemon, marker logic.WakeMarker, tick <-chan time.Time) error {
	d.publishSystem(ctx, "STARTUP", "")

	if err := d.machine.Run(ctx, marker, tick); err != nil {
		return err
	}

	if ctx.Err() != nil {
		d.publishSystem(ctx, "SHUTDOWN", shutdownReason(ctx))
		if d.publisher != nil {
			if err := d.publisher.Flush(power.FlushTimeout); err != nil {
				logger.WarnKV(ctx, "shutdown flush incomplete", "error", err)
			}
		}
	}
	return nil
}

func (d *daemon) publishSystem(ctx context.Context, event, reason string) {
	if d.publisher == nil {
		return
	}
	if d.mqttStatus != nil {
		d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
	}

	snap := d.tracker.Snapshot()
	e := mqtt.SystemEvent{
		Timestamp:  d.now(),
		Event:      event,
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, event, reason),
	}
	if err := d.publisher.PublishSystem(e); err != nil {
		logger.WarnKV(ctx, "failed to publish system event", "event", event, "error", err)
		return
	}
	logger.DebugKV(ctx, "published system event", "event", event)
}

// printRegisters writes the retained registers and their decoded meaning to w.
// It never clears the wake marker.
func printRegisters(ctx context.Context, w io.Writer, s store.Store, tracker *status.Tracker) error {
	var regs status.Registers
	for _, r := range []struct {
		slot store.Slot
		dst  *uint32
	}{
		{store.SlotWakeMarker, &regs.WakeMarker},
		{store.SlotAlarmHour, &regs.AlarmHour},
		{store.SlotAlarmMinute, &regs.AlarmMinute},
	} {
		v, err := s.Read(ctx, r.slot)
		if err != nil {
			return fmt.Errorf("read %s: %w", r.slot, err)
		}
		*r.dst = v
	}

	a, _ := logic.Sanitize(regs.AlarmHour, regs.AlarmMinute)
	tracker.Update(logic.NewContext().WithAlarm(a))
	tracker.SetWake(logic.DecodeMarker(regs.WakeMarker))
	tracker.SetRegisters(&regs)

	_, err := fmt.Fprintf(w, "%s\n", status.FormatJSON(tracker.Snapshot()))
	return err
}

func statusConfig(cfg *config.Config) status.Config {
	return status.Config{
		GPIOChip:  cfg.GPIOChip,
		HourPin:   cfg.Pins.Hour,
		MinutePin: cfg.Pins.Minute,
		BuzzerPin: cfg.Pins.Buzzer,
		I2CBus:    cfg.I2CBus,
		Broker:    cfg.Broker,
	}
}

// hardware holds the opened peripherals. Fields are nil until opened.
type hardware struct {
	bus     i2c.BusCloser
	clock   *rtc.Device
	buttons *gpio.RealButtons
	buzzer  *gpio.RealBuzzer
}

func openHardware(cfg *config.Config) (*hardware, error) {
	h := &hardware{}

	if _, err := host.Init(); err != nil {
		return h, &power.HardwareFault{Op: "init host drivers", Err: err}
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return h, &power.HardwareFault{Op: "open i2c bus " + cfg.I2CBus, Err: err}
	}
	h.bus = bus

	clock, err := rtc.Open(cfg.RTCDevice)
	if err != nil {
		return h, &power.HardwareFault{Op: "open rtc", Err: err}
	}
	h.clock = clock

	buttons, err := gpio.NewRealButtons(cfg.GPIOChip, cfg.Pins.Hour, cfg.Pins.Minute)
	if err != nil {
		return h, &power.HardwareFault{Op: "request buttons", Err: err}
	}
	h.buttons = buttons

	buzzer, err := gpio.NewRealBuzzer(cfg.GPIOChip, cfg.Pins.Buzzer)
	if err != nil {
		return h, &power.HardwareFault{Op: "request buzzer", Err: err}
	}
	h.buzzer = buzzer

	return h, nil
}

// closers lists the opened peripherals, button lines first so no further
// events arrive while the rest is released.
func (h *hardware) closers() []io.Closer {
	var cs []io.Closer
	if h.buttons != nil {
		cs = append(cs, h.buttons)
	}
	if h.buzzer != nil {
		cs = append(cs, h.buzzer)
	}
	if h.clock != nil {
		cs = append(cs, h.clock)
	}
	if h.bus != nil {
		cs = append(cs, h.bus)
	}
	return cs
}

func closeAll(ctx context.Context, cs []io.Closer) {
	for _, c := range cs {
		if err := c.Close(); err != nil {
			logger.WarnKV(ctx, "close", "error", err)
		}
	}
}

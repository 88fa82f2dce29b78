// Package config loads the alarm clock hardware wiring from YAML.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/alarm-clock/internal/gpio"
	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/rtc"
	"github.com/sweeney/alarm-clock/internal/store"
)

// DefaultConfigFilename is used when no path is given.
const DefaultConfigFilename = "/etc/alarm-clock.yaml"

// Config describes how the device is wired. Timing constants (ring length,
// idle timeout, display address) are fixed and deliberately not configurable.
type Config struct {
	GPIOChip string `yaml:"gpio_chip"`
	Pins     Pins   `yaml:"pins"`

	// I2CBus is the periph bus name, e.g. "1" for /dev/i2c-1.
	I2CBus string `yaml:"i2c_bus"`

	RTCDevice string `yaml:"rtc_device"`

	NVMemPath   string `yaml:"nvmem_path"`
	NVMemOffset int64  `yaml:"nvmem_offset"`

	// Broker is the MQTT broker for lifecycle events. Empty disables publishing.
	Broker string `yaml:"broker"`

	LogLevel string `yaml:"log_level"`
}

// Pins are GPIO line offsets on GPIOChip.
type Pins struct {
	Hour   int `yaml:"hour_button"`
	Minute int `yaml:"minute_button"`
	Buzzer int `yaml:"buzzer"`
}

var errDuplicatePin = errors.New("button and buzzer pins must be distinct")

// Default returns the configuration for the reference board.
func Default() *Config {
	return &Config{
		GPIOChip: gpio.DefaultChip,
		Pins: Pins{
			Hour:   gpio.DefaultPinHour,
			Minute: gpio.DefaultPinMinute,
			Buzzer: gpio.DefaultPinBuzzer,
		},
		I2CBus:    "1",
		RTCDevice: rtc.DefaultDevice,
		NVMemPath: store.DefaultNVMemPath,
		LogLevel:  "info",
	}
}

// Load reads configuration from path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg and fills empty fields with defaults.
func Validate(cfg *Config) error {
	def := Default()
	if cfg.GPIOChip == "" {
		cfg.GPIOChip = def.GPIOChip
	}
	if cfg.I2CBus == "" {
		cfg.I2CBus = def.I2CBus
	}
	if cfg.RTCDevice == "" {
		cfg.RTCDevice = def.RTCDevice
	}
	if cfg.NVMemPath == "" {
		cfg.NVMemPath = def.NVMemPath
	}

	p := cfg.Pins
	if p.Hour < 0 || p.Minute < 0 || p.Buzzer < 0 {
		return fmt.Errorf("invalid pins %+v: offsets must not be negative", p)
	}
	if p.Hour == p.Minute || p.Hour == p.Buzzer || p.Minute == p.Buzzer {
		return errDuplicatePin
	}

	if cfg.NVMemOffset < 0 {
		return fmt.Errorf("invalid nvmem offset %d", cfg.NVMemOffset)
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	if cfg.Broker != "" {
		u, err := url.Parse(cfg.Broker)
		if err != nil {
			return fmt.Errorf("invalid broker: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid broker %q: want scheme://host:port", cfg.Broker)
		}
	}

	return nil
}

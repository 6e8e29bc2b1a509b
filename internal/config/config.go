// Package config loads runtime options using koanf.
// Precedence: TOMATO_* environment variables, then compiled defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variable names before mapping.
const EnvPrefix = "TOMATO_"

// ErrInvalidOption is returned when a loaded option is out of range.
var ErrInvalidOption = errors.New("invalid option")

// Options holds runtime options that are not user preferences.
type Options struct {
	AppName string `koanf:"app_name"`

	// PollInterval is the driver's redraw and tick cadence.
	PollInterval time.Duration `koanf:"poll_interval"`

	Log     LogOptions     `koanf:"log"`
	Effects EffectsOptions `koanf:"effects"`
}

// LogOptions configures the slog logger.
type LogOptions struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"` // Empty writes to stderr
}

// EffectsOptions configures transition effects.
type EffectsOptions struct {
	QueueSize     int  `koanf:"queue_size"`
	Sound         bool `koanf:"sound"`
	Notifications bool `koanf:"notifications"`
	Volume        int  `koanf:"volume"`
}

func defaults() *Options {
	return &Options{
		AppName:      "Tomato",
		PollInterval: 10 * time.Millisecond,
		Log: LogOptions{
			Level:  "info",
			Format: "text",
		},
		Effects: EffectsOptions{
			QueueSize:     8,
			Sound:         true,
			Notifications: true,
			Volume:        100,
		},
	}
}

// Load reads options from the environment over compiled defaults.
// A single underscore separates levels (TOMATO_LOG_LEVEL is log.level) and a
// double underscore stands for an underscore inside a key
// (TOMATO_EFFECTS_QUEUE__SIZE is effects.queue_size).
func Load() (*Options, error) {
	k := koanf.New(".")
	options := defaults()

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// Validate checks option ranges.
func (options *Options) Validate() error {
	if options.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidOption)
	}
	if options.Effects.QueueSize <= 0 {
		return fmt.Errorf("%w: effects.queue_size must be positive", ErrInvalidOption)
	}
	if options.Effects.Volume < 0 || options.Effects.Volume > 100 {
		return fmt.Errorf("%w: effects.volume must be within 0..100", ErrInvalidOption)
	}
	if strings.TrimSpace(options.AppName) == "" {
		return fmt.Errorf("%w: app_name is empty", ErrInvalidOption)
	}
	return nil
}

// envKey maps TOMATO_EFFECTS_QUEUE__SIZE to effects.queue_size.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key = strings.ReplaceAll(key, "__", "\x00")
	key = strings.ReplaceAll(key, "_", ".")
	return strings.ReplaceAll(key, "\x00", "_")
}

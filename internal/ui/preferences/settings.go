package preferences

import (
	"time"

	"tomato/internal/core/model"
)

// Settings defines editable user preferences plus the counters that survive
// restarts.
type Settings struct {
	RoundLength    time.Duration
	BreakLength    time.Duration
	BreaksEnabled  bool
	TrackFocusTime bool

	SoundEnabled         bool
	NotificationsEnabled bool

	CompletedRounds int
	FocusTime       time.Duration
}

// DefaultSettings returns default settings for Tomato.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerConfig()
	return Settings{
		RoundLength:          defaults.RoundLength,
		BreakLength:          defaults.BreakLength,
		BreaksEnabled:        defaults.BreaksEnabled,
		TrackFocusTime:       defaults.TrackFocusTime,
		SoundEnabled:         true,
		NotificationsEnabled: true,
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		RoundLength:    settings.RoundLength,
		BreakLength:    settings.BreakLength,
		BreaksEnabled:  settings.BreaksEnabled,
		TrackFocusTime: settings.TrackFocusTime,
	}.Normalize()
}

// WithTimerConfig copies the timer fields of config into settings.
func (settings Settings) WithTimerConfig(config model.TimerConfig) Settings {
	settings.RoundLength = config.RoundLength
	settings.BreakLength = config.BreakLength
	settings.BreaksEnabled = config.BreaksEnabled
	settings.TrackFocusTime = config.TrackFocusTime
	return settings
}

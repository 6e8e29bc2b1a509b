package model

import "time"

// Default lengths used when no preferences have been saved yet.
const (
	DefaultRoundLength = 25 * time.Minute
	DefaultBreakLength = 5 * time.Minute
)

// TimerConfig contains runtime settings for the RoundTimer state machine.
type TimerConfig struct {
	RoundLength time.Duration
	BreakLength time.Duration

	// BreaksEnabled switches between Running -> Break -> Running cycling and
	// Running -> Stopped after each round.
	BreaksEnabled bool

	// TrackFocusTime banks time spent in Running phases.
	TrackFocusTime bool
}

// DefaultTimerConfig returns the configuration used on first launch.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		RoundLength:    DefaultRoundLength,
		BreakLength:    DefaultBreakLength,
		BreaksEnabled:  true,
		TrackFocusTime: true,
	}
}

// Normalize clamps a negative round length to zero and replaces a
// non-positive break length with DefaultBreakLength. A zero break would end
// the moment it began.
func (config TimerConfig) Normalize() TimerConfig {
	if config.RoundLength < 0 {
		config.RoundLength = 0
	}
	if config.BreakLength <= 0 {
		config.BreakLength = DefaultBreakLength
	}
	return config
}

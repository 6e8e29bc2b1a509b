package roundtimer

import (
	"time"

	"tomato/internal/core/model"
)

// Elapsed returns the time spent in the phase at now. It is zero for a
// stopped phase and saturates at zero when now precedes the phase start.
func Elapsed(phase Phase, now time.Time) time.Duration {
	if !phase.Active() {
		return 0
	}
	elapsed := now.Sub(phase.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the time left in the active phase. The result goes
// negative once the phase is overdue and is zero when stopped.
func Remaining(phase Phase, config model.TimerConfig, now time.Time) time.Duration {
	switch phase.State {
	case StateRunning:
		return config.RoundLength - Elapsed(phase, now)
	case StateBreak:
		return config.BreakLength - Elapsed(phase, now)
	default:
		return 0
	}
}

// IsComplete reports whether an active phase has run out.
func IsComplete(phase Phase, config model.TimerConfig, now time.Time) bool {
	return phase.Active() && Remaining(phase, config, now) <= 0
}

// Progress returns the consumed fraction of the active phase in [0, 1].
func Progress(phase Phase, config model.TimerConfig, now time.Time) float64 {
	var total time.Duration
	switch phase.State {
	case StateRunning:
		total = config.RoundLength
	case StateBreak:
		total = config.BreakLength
	default:
		return 0
	}
	if total <= 0 {
		return 1
	}
	progress := float64(Elapsed(phase, now)) / float64(total)
	if progress > 1 {
		return 1
	}
	return progress
}

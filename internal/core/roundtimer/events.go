package roundtimer

import "time"

// State represents the current RoundTimer mode.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StateBreak   State = "break"
)

// Phase is the current State together with the instant it began.
// StartedAt is zero exactly when State is StateStopped.
type Phase struct {
	State     State
	StartedAt time.Time
}

// Stopped returns the phase without an active round.
func Stopped() Phase {
	return Phase{State: StateStopped}
}

// Running returns a work round phase started at startedAt.
func Running(startedAt time.Time) Phase {
	return Phase{State: StateRunning, StartedAt: startedAt}
}

// Break returns a break phase started at startedAt.
func Break(startedAt time.Time) Phase {
	return Phase{State: StateBreak, StartedAt: startedAt}
}

// Active reports whether the phase carries a start instant.
func (phase Phase) Active() bool {
	return phase.State == StateRunning || phase.State == StateBreak
}

// TransitionKind names the effect a transition asks for.
type TransitionKind string

const (
	TransitionRoundStarted  TransitionKind = "round_started"
	TransitionRoundFinished TransitionKind = "round_finished"
	TransitionBreakFinished TransitionKind = "break_finished"
)

// Transition is emitted to the EffectSink on every phase change that has a
// user-visible effect.
type Transition struct {
	Kind            TransitionKind
	From            State
	To              State
	At              time.Time
	CompletedRounds int
}

// EffectSink receives transitions. Emit must not block the caller.
type EffectSink interface {
	Emit(Transition)
}

type discardSink struct{}

func (discardSink) Emit(Transition) {}

// Snapshot carries everything a driver needs to render one frame.
type Snapshot struct {
	Phase           Phase
	Remaining       time.Duration
	Display         string
	Progress        float64
	CompletedRounds int
	FocusTime       time.Duration
	RoundLength     time.Duration
	BreakLength     time.Duration
}

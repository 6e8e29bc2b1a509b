package roundtimer

import (
	"time"

	"tomato/internal/core/model"
)

// RoundTimer is the state machine alternating between work rounds and
// breaks. It is owned by a single driver goroutine and does no locking.
type RoundTimer struct {
	config          model.TimerConfig
	phase           Phase
	completedRounds int
	focusBanked     time.Duration
	sink            EffectSink
}

// New creates a stopped RoundTimer. A nil sink discards transitions.
func New(config model.TimerConfig, sink EffectSink) *RoundTimer {
	if sink == nil {
		sink = discardSink{}
	}
	return &RoundTimer{
		config: config.Normalize(),
		phase:  Stopped(),
		sink:   sink,
	}
}

// Config returns the current configuration.
func (timer *RoundTimer) Config() model.TimerConfig {
	return timer.config
}

// Phase returns the current phase.
func (timer *RoundTimer) Phase() Phase {
	return timer.phase
}

// CompletedRounds returns the number of rounds finished since the last reset.
func (timer *RoundTimer) CompletedRounds() int {
	return timer.completedRounds
}

// SetRoundLength changes the round length. A running round sees the new
// length on the next query.
func (timer *RoundTimer) SetRoundLength(length time.Duration) {
	timer.config.RoundLength = length
	timer.config = timer.config.Normalize()
}

// SetBreakLength changes the break length. Non-positive lengths are ignored.
func (timer *RoundTimer) SetBreakLength(length time.Duration) {
	if length <= 0 {
		return
	}
	timer.config.BreakLength = length
}

// SetBreaksEnabled toggles the break phase. A break already in progress runs
// to completion.
func (timer *RoundTimer) SetBreaksEnabled(enabled bool) {
	timer.config.BreaksEnabled = enabled
}

// SetTrackFocusTime toggles focus time banking.
func (timer *RoundTimer) SetTrackFocusTime(enabled bool) {
	timer.config.TrackFocusTime = enabled
}

// UpdateConfig replaces the whole configuration without touching the phase.
func (timer *RoundTimer) UpdateConfig(config model.TimerConfig) {
	timer.config = config.Normalize()
}

// Start begins a round at now. It returns false when a phase is already
// active or the round length is zero.
func (timer *RoundTimer) Start(now time.Time) bool {
	if timer.phase.Active() || timer.config.RoundLength <= 0 {
		return false
	}
	timer.phase = Running(now)
	timer.emit(TransitionRoundStarted, StateStopped, now)
	return true
}

// Stop ends the active phase. Time spent in a running round is banked.
func (timer *RoundTimer) Stop(now time.Time) {
	if !timer.phase.Active() {
		return
	}
	if timer.phase.State == StateRunning {
		timer.bankFocus(timer.roundElapsed(now))
	}
	timer.phase = Stopped()
}

// Toggle starts a stopped timer and stops an active one. It reports whether
// the timer is active afterwards.
func (timer *RoundTimer) Toggle(now time.Time) bool {
	if timer.phase.Active() {
		timer.Stop(now)
		return false
	}
	return timer.Start(now)
}

// ResetCompletedRounds zeroes the round counter in any phase.
func (timer *RoundTimer) ResetCompletedRounds() {
	timer.completedRounds = 0
}

// RestoreCompletedRounds seeds the counter from persisted state.
func (timer *RoundTimer) RestoreCompletedRounds(rounds int) {
	if rounds < 0 {
		return
	}
	timer.completedRounds = rounds
}

// RestoreFocusTime seeds the banked focus time from persisted state.
func (timer *RoundTimer) RestoreFocusTime(total time.Duration) {
	if total < 0 {
		return
	}
	timer.focusBanked = total
}

// FocusTime returns banked focus time plus the live part of a running round.
func (timer *RoundTimer) FocusTime(now time.Time) time.Duration {
	if !timer.config.TrackFocusTime || timer.phase.State != StateRunning {
		return timer.focusBanked
	}
	return timer.focusBanked + timer.roundElapsed(now)
}

// Elapsed returns the time spent in the current phase.
func (timer *RoundTimer) Elapsed(now time.Time) time.Duration {
	return Elapsed(timer.phase, now)
}

// Remaining returns the time left in the current phase; see Remaining.
func (timer *RoundTimer) Remaining(now time.Time) time.Duration {
	return Remaining(timer.phase, timer.config, now)
}

// IsComplete reports whether the current phase has run out.
func (timer *RoundTimer) IsComplete(now time.Time) bool {
	return IsComplete(timer.phase, timer.config, now)
}

// Tick advances the machine by at most one transition. Any gap longer than
// a phase collapses into that single transition.
func (timer *RoundTimer) Tick(now time.Time) (Transition, bool) {
	if !timer.IsComplete(now) {
		return Transition{}, false
	}

	switch timer.phase.State {
	case StateRunning:
		timer.bankFocus(timer.roundElapsed(now))
		timer.completedRounds++
		if timer.config.BreaksEnabled {
			timer.phase = Break(now)
			return timer.emit(TransitionRoundFinished, StateRunning, now), true
		}
		timer.phase = Stopped()
		return timer.emit(TransitionRoundFinished, StateRunning, now), true
	case StateBreak:
		timer.phase = Running(now)
		return timer.emit(TransitionBreakFinished, StateBreak, now), true
	}
	return Transition{}, false
}

// Snapshot derives the display values for now. Display is empty while
// stopped.
func (timer *RoundTimer) Snapshot(now time.Time) Snapshot {
	remaining := timer.Remaining(now)
	var display string
	if timer.phase.Active() {
		display = FormatRemaining(remaining)
	}
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		Phase:           timer.phase,
		Remaining:       remaining,
		Display:         display,
		Progress:        Progress(timer.phase, timer.config, now),
		CompletedRounds: timer.completedRounds,
		FocusTime:       timer.FocusTime(now),
		RoundLength:     timer.config.RoundLength,
		BreakLength:     timer.config.BreakLength,
	}
}

// roundElapsed is the running round's elapsed time capped at the round length.
func (timer *RoundTimer) roundElapsed(now time.Time) time.Duration {
	elapsed := Elapsed(timer.phase, now)
	if elapsed > timer.config.RoundLength {
		return timer.config.RoundLength
	}
	return elapsed
}

func (timer *RoundTimer) bankFocus(elapsed time.Duration) {
	if !timer.config.TrackFocusTime {
		return
	}
	timer.focusBanked += elapsed
}

func (timer *RoundTimer) emit(kind TransitionKind, from State, now time.Time) Transition {
	transition := Transition{
		Kind:            kind,
		From:            from,
		To:              timer.phase.State,
		At:              now,
		CompletedRounds: timer.completedRounds,
	}
	timer.sink.Emit(transition)
	return transition
}

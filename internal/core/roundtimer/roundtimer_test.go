package roundtimer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomato/internal/core/model"
)

type recordingSink struct {
	transitions []Transition
}

func (sink *recordingSink) Emit(transition Transition) {
	sink.transitions = append(sink.transitions, transition)
}

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func tenSecondConfig() model.TimerConfig {
	return model.TimerConfig{
		RoundLength:    10 * time.Second,
		BreakLength:    5 * time.Second,
		BreaksEnabled:  true,
		TrackFocusTime: true,
	}
}

func newTimer(t *testing.T, config model.TimerConfig) (*RoundTimer, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return New(config, sink), sink
}

func TestNewTimerIsStopped(t *testing.T) {
	timer, sink := newTimer(t, model.DefaultTimerConfig())

	assert.Equal(t, Stopped(), timer.Phase())
	assert.True(t, timer.Phase().StartedAt.IsZero())
	assert.Zero(t, timer.CompletedRounds())
	assert.Equal(t, model.DefaultRoundLength, timer.Config().RoundLength)
	assert.Equal(t, model.DefaultBreakLength, timer.Config().BreakLength)
	assert.True(t, timer.Config().BreaksEnabled)
	assert.Empty(t, sink.transitions)
}

func TestNilSinkDiscards(t *testing.T) {
	timer := New(tenSecondConfig(), nil)
	require.True(t, timer.Start(epoch))

	_, ok := timer.Tick(epoch.Add(10 * time.Second))
	assert.True(t, ok)
}

func TestStartEntersRunning(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())

	require.True(t, timer.Start(epoch))

	assert.Equal(t, Running(epoch), timer.Phase())
	require.Len(t, sink.transitions, 1)
	assert.Equal(t, TransitionRoundStarted, sink.transitions[0].Kind)
	assert.Equal(t, StateStopped, sink.transitions[0].From)
	assert.Equal(t, StateRunning, sink.transitions[0].To)
}

func TestStartGuardRejectsZeroRound(t *testing.T) {
	config := tenSecondConfig()
	config.RoundLength = 0
	timer, sink := newTimer(t, config)

	assert.False(t, timer.Start(epoch))
	assert.Equal(t, StateStopped, timer.Phase().State)
	assert.Empty(t, sink.transitions)

	_, ok := timer.Tick(epoch.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, StateStopped, timer.Phase().State)
}

func TestNegativeRoundLengthClampsToZero(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())

	timer.SetRoundLength(-time.Minute)

	assert.Zero(t, timer.Config().RoundLength)
	assert.False(t, timer.Start(epoch))
}

func TestBreakLengthStaysPositive(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())

	timer.SetBreakLength(0)
	timer.SetBreakLength(-time.Second)
	assert.Equal(t, 5*time.Second, timer.Config().BreakLength)

	config := tenSecondConfig()
	config.BreakLength = 0
	timer.UpdateConfig(config)
	assert.Equal(t, model.DefaultBreakLength, timer.Config().BreakLength)
}

func TestZeroBreakLengthDoesNotEndBreakOnNextTick(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())
	timer.SetBreakLength(0)
	require.True(t, timer.Start(epoch))

	_, ok := timer.Tick(epoch.Add(10 * time.Second))
	require.True(t, ok)
	_, ok = timer.Tick(epoch.Add(10*time.Second + 10*time.Millisecond))

	assert.False(t, ok)
	assert.Equal(t, Break(epoch.Add(10*time.Second)), timer.Phase())
	require.Len(t, sink.transitions, 2)
	assert.Equal(t, TransitionRoundFinished, sink.transitions[1].Kind)
}

func TestStartWhileActiveIsNoop(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))

	assert.False(t, timer.Start(epoch.Add(time.Second)))
	assert.Equal(t, Running(epoch), timer.Phase())
	assert.Len(t, sink.transitions, 1)
}

func TestRemainingWhileRunning(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))

	for _, offset := range []time.Duration{0, time.Millisecond, 3 * time.Second, 9999 * time.Millisecond, 10 * time.Second} {
		now := epoch.Add(offset)
		assert.Equal(t, 10*time.Second-offset, timer.Remaining(now), "offset %v", offset)
		assert.Equal(t, offset, timer.Elapsed(now))
	}
}

func TestRemainingIsMonotonic(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))

	previous := timer.Remaining(epoch)
	for step := 1; step <= 150; step++ {
		current := timer.Remaining(epoch.Add(time.Duration(step) * 100 * time.Millisecond))
		assert.LessOrEqual(t, current, previous)
		previous = current
	}
}

func TestRemainingWhenStoppedIsZero(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())

	assert.Zero(t, timer.Remaining(epoch))
	assert.Zero(t, timer.Elapsed(epoch))
	assert.False(t, timer.IsComplete(epoch))
}

func TestRoundLengthChangeAppliesImmediately(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))
	now := epoch.Add(4 * time.Second)

	timer.SetRoundLength(20 * time.Second)
	assert.Equal(t, 16*time.Second, timer.Remaining(now))

	timer.SetRoundLength(3 * time.Second)
	assert.Equal(t, -time.Second, timer.Remaining(now))
	assert.True(t, timer.IsComplete(now))
}

func TestBreakLengthChangeAppliesImmediately(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))
	breakStart := epoch.Add(10 * time.Second)
	_, ok := timer.Tick(breakStart)
	require.True(t, ok)

	timer.SetBreakLength(time.Minute)
	assert.Equal(t, 58*time.Second, timer.Remaining(breakStart.Add(2*time.Second)))
}

func TestTickTransitionsRunningToBreak(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))

	_, ok := timer.Tick(epoch.Add(9999 * time.Millisecond))
	assert.False(t, ok)
	assert.Equal(t, Running(epoch), timer.Phase())

	finish := epoch.Add(10 * time.Second)
	transition, ok := timer.Tick(finish)
	require.True(t, ok)
	assert.Equal(t, Break(finish), timer.Phase())
	assert.Equal(t, 1, timer.CompletedRounds())
	assert.Equal(t, Transition{
		Kind:            TransitionRoundFinished,
		From:            StateRunning,
		To:              StateBreak,
		At:              finish,
		CompletedRounds: 1,
	}, transition)
	require.Len(t, sink.transitions, 2)
	assert.Equal(t, transition, sink.transitions[1])
}

func TestTickTransitionsBreakToRunning(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))
	breakStart := epoch.Add(10 * time.Second)
	_, ok := timer.Tick(breakStart)
	require.True(t, ok)

	_, ok = timer.Tick(breakStart.Add(4 * time.Second))
	assert.False(t, ok)

	resume := breakStart.Add(5 * time.Second)
	transition, ok := timer.Tick(resume)
	require.True(t, ok)
	assert.Equal(t, Running(resume), timer.Phase())
	assert.Equal(t, TransitionBreakFinished, transition.Kind)
	assert.Equal(t, 1, timer.CompletedRounds())
	assert.Len(t, sink.transitions, 3)
}

func TestTickIsIdempotentAtSameInstant(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))
	finish := epoch.Add(10 * time.Second)

	_, first := timer.Tick(finish)
	phaseAfterFirst := timer.Phase()
	_, second := timer.Tick(finish)

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, phaseAfterFirst, timer.Phase())
	assert.Equal(t, 1, timer.CompletedRounds())
	assert.Len(t, sink.transitions, 2)
}

func TestTickCollapsesLargeGapIntoOneTransition(t *testing.T) {
	timer, sink := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))

	resumed := epoch.Add(3 * time.Hour)
	_, ok := timer.Tick(resumed)
	require.True(t, ok)

	assert.Equal(t, Break(resumed), timer.Phase())
	assert.Equal(t, 1, timer.CompletedRounds())
	assert.Len(t, sink.transitions, 2)
}

func TestTickWithBreaksDisabledStops(t *testing.T) {
	config := tenSecondConfig()
	config.BreaksEnabled = false
	timer, sink := newTimer(t, config)
	require.True(t, timer.Start(epoch))

	transition, ok := timer.Tick(epoch.Add(10 * time.Second))
	require.True(t, ok)

	assert.Equal(t, Stopped(), timer.Phase())
	assert.Equal(t, StateStopped, transition.To)
	assert.Equal(t, TransitionRoundFinished, transition.Kind)
	assert.Equal(t, 1, timer.CompletedRounds())
	assert.Len(t, sink.transitions, 2)
}

func TestStopFromEitherPhase(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		timer, sink := newTimer(t, tenSecondConfig())
		require.True(t, timer.Start(epoch))

		timer.Stop(epoch.Add(time.Second))

		assert.Equal(t, Stopped(), timer.Phase())
		assert.True(t, timer.Phase().StartedAt.IsZero())
		assert.Len(t, sink.transitions, 1)
	})

	t.Run("break", func(t *testing.T) {
		timer, sink := newTimer(t, tenSecondConfig())
		require.True(t, timer.Start(epoch))
		_, ok := timer.Tick(epoch.Add(10 * time.Second))
		require.True(t, ok)

		timer.Stop(epoch.Add(11 * time.Second))

		assert.Equal(t, Stopped(), timer.Phase())
		assert.True(t, timer.Phase().StartedAt.IsZero())
		assert.Len(t, sink.transitions, 2)
	})

	t.Run("stopped", func(t *testing.T) {
		timer, _ := newTimer(t, tenSecondConfig())
		timer.Stop(epoch)
		assert.Equal(t, Stopped(), timer.Phase())
	})
}

func TestToggle(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())

	assert.True(t, timer.Toggle(epoch))
	assert.Equal(t, StateRunning, timer.Phase().State)

	assert.False(t, timer.Toggle(epoch.Add(time.Second)))
	assert.Equal(t, StateStopped, timer.Phase().State)
}

func TestResetCompletedRounds(t *testing.T) {
	for _, phase := range []State{StateStopped, StateRunning, StateBreak} {
		t.Run(string(phase), func(t *testing.T) {
			timer, _ := newTimer(t, tenSecondConfig())
			timer.RestoreCompletedRounds(3)
			switch phase {
			case StateRunning:
				require.True(t, timer.Start(epoch))
			case StateBreak:
				require.True(t, timer.Start(epoch))
				_, ok := timer.Tick(epoch.Add(10 * time.Second))
				require.True(t, ok)
				require.Equal(t, 4, timer.CompletedRounds())
			}

			timer.ResetCompletedRounds()

			assert.Zero(t, timer.CompletedRounds())
			assert.Equal(t, phase, timer.Phase().State)
		})
	}
}

func TestRestoreCompletedRoundsIgnoresNegative(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	timer.RestoreCompletedRounds(2)
	timer.RestoreCompletedRounds(-1)
	assert.Equal(t, 2, timer.CompletedRounds())
}

func TestClockRollbackClampsElapsed(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))

	before := epoch.Add(-5 * time.Minute)
	assert.Zero(t, timer.Elapsed(before))
	assert.Equal(t, 10*time.Second, timer.Remaining(before))
	assert.False(t, timer.IsComplete(before))

	_, ok := timer.Tick(before)
	assert.False(t, ok)
	assert.Equal(t, Running(epoch), timer.Phase())
}

func TestFocusTimeTracking(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	timer.RestoreFocusTime(time.Minute)
	require.True(t, timer.Start(epoch))

	assert.Equal(t, time.Minute+4*time.Second, timer.FocusTime(epoch.Add(4*time.Second)))

	_, ok := timer.Tick(epoch.Add(30 * time.Second))
	require.True(t, ok)
	assert.Equal(t, time.Minute+10*time.Second, timer.FocusTime(epoch.Add(31*time.Second)))

	resume := epoch.Add(40 * time.Second)
	_, ok = timer.Tick(resume)
	require.True(t, ok)
	timer.Stop(resume.Add(3 * time.Second))
	assert.Equal(t, time.Minute+13*time.Second, timer.FocusTime(resume.Add(time.Hour)))
}

func TestFocusTimeDisabled(t *testing.T) {
	config := tenSecondConfig()
	config.TrackFocusTime = false
	timer, _ := newTimer(t, config)
	require.True(t, timer.Start(epoch))

	_, ok := timer.Tick(epoch.Add(10 * time.Second))
	require.True(t, ok)

	assert.Zero(t, timer.FocusTime(epoch.Add(11*time.Second)))
}

func TestSnapshot(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())

	stopped := timer.Snapshot(epoch)
	assert.Equal(t, StateStopped, stopped.Phase.State)
	assert.Empty(t, stopped.Display)
	assert.Zero(t, stopped.Remaining)

	require.True(t, timer.Start(epoch))
	running := timer.Snapshot(epoch.Add(4 * time.Second))
	assert.Equal(t, 6*time.Second, running.Remaining)
	assert.Equal(t, "6 Seconds left in round", running.Display)
	assert.InDelta(t, 0.4, running.Progress, 1e-9)
	assert.Equal(t, 10*time.Second, running.RoundLength)

	overdue := timer.Snapshot(epoch.Add(12 * time.Second))
	assert.Zero(t, overdue.Remaining)
	assert.Equal(t, TimeIsUp, overdue.Display)
	assert.Equal(t, float64(1), overdue.Progress)
}

func TestTickDoesNotAllocateWhenIdle(t *testing.T) {
	timer, _ := newTimer(t, tenSecondConfig())
	require.True(t, timer.Start(epoch))
	now := epoch.Add(time.Second)

	allocs := testing.AllocsPerRun(100, func() {
		timer.Tick(now)
	})
	assert.Zero(t, allocs)
}

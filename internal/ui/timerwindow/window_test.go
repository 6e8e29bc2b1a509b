package timerwindow

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomato/internal/core/roundtimer"
	"tomato/internal/ui/theme"
)

func stoppedSnapshot() roundtimer.Snapshot {
	return roundtimer.Snapshot{
		Phase:       roundtimer.Stopped(),
		RoundLength: 25 * time.Minute,
		BreakLength: 5 * time.Minute,
	}
}

func TestRenderStopped(t *testing.T) {
	app := test.NewTempApp(t)
	view := New(app, "Tomato", stoppedSnapshot(), Callbacks{})

	assert.Equal(t, "Stopped", view.phaseLabel.Text)
	assert.Equal(t, "Press Start to begin a round", view.displayLabel.Text)
	assert.Equal(t, "Start", view.toggleButton.Text)
	assert.Equal(t, "25 min", view.roundLabel.Text)
	assert.Equal(t, "5 min", view.breakLabel.Text)
	assert.Equal(t, theme.Red, view.background.FillColor)
}

func TestRenderRunning(t *testing.T) {
	app := test.NewTempApp(t)
	view := New(app, "Tomato", stoppedSnapshot(), Callbacks{})

	snapshot := stoppedSnapshot()
	snapshot.Phase = roundtimer.Running(time.Now())
	snapshot.Display = "3 Minutes left in round"
	snapshot.Progress = 0.5
	snapshot.CompletedRounds = 2
	snapshot.FocusTime = 90 * time.Minute
	view.Render(snapshot)

	assert.Equal(t, "Focus", view.phaseLabel.Text)
	assert.Equal(t, "3 Minutes left in round", view.displayLabel.Text)
	assert.Equal(t, "Stop", view.toggleButton.Text)
	assert.Equal(t, "Completed rounds: 2", view.roundsLabel.Text)
	assert.Equal(t, "Focus time: 1h 30m", view.focusLabel.Text)
	assert.Equal(t, 0.5, view.progress.Value)
	assert.Equal(t, theme.Green, view.background.FillColor)
}

func TestZeroRoundDisablesStart(t *testing.T) {
	app := test.NewTempApp(t)
	snapshot := stoppedSnapshot()
	snapshot.RoundLength = 0

	view := New(app, "Tomato", snapshot, Callbacks{})

	assert.True(t, view.toggleButton.Disabled())
}

func TestCallbacks(t *testing.T) {
	app := test.NewTempApp(t)
	var toggled, reset int
	var roundLength, breakLength time.Duration
	view := New(app, "Tomato", stoppedSnapshot(), Callbacks{
		OnToggle:      func() { toggled++ },
		OnResetRounds: func() { reset++ },
		OnRoundLength: func(length time.Duration) { roundLength = length },
		OnBreakLength: func(length time.Duration) { breakLength = length },
	})

	test.Tap(view.toggleButton)
	view.roundSlider.SetValue(40)
	view.breakSlider.SetValue(10)

	require.Equal(t, 1, toggled)
	assert.Zero(t, reset)
	assert.Equal(t, 40*time.Minute, roundLength)
	assert.Equal(t, 10*time.Minute, breakLength)
}

func TestFlash(t *testing.T) {
	app := test.NewTempApp(t)
	view := New(app, "Tomato", stoppedSnapshot(), Callbacks{})

	view.Flash("Time is up! Take a break")

	assert.Equal(t, "Time is up! Take a break", view.banner.Text)
}

func TestFormatFocus(t *testing.T) {
	assert.Equal(t, "0h 00m", FormatFocus(0))
	assert.Equal(t, "0h 00m", FormatFocus(-time.Minute))
	assert.Equal(t, "2h 05m", FormatFocus(2*time.Hour+5*time.Minute+59*time.Second))
}

func TestPhaseTitle(t *testing.T) {
	assert.Equal(t, "Focus", PhaseTitle(roundtimer.StateRunning))
	assert.Equal(t, "Break", PhaseTitle(roundtimer.StateBreak))
	assert.Equal(t, "Stopped", PhaseTitle(roundtimer.StateStopped))
}

// Package timerwindow is the fyne main window of the desktop driver.
package timerwindow

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tomato/internal/core/roundtimer"
	"tomato/internal/ui/theme"
)

const (
	maxRoundMinutes = 120
	maxBreakMinutes = 60
)

// Callbacks relays user actions to the driver.
type Callbacks struct {
	OnToggle      func()
	OnResetRounds func()
	OnRoundLength func(time.Duration)
	OnBreakLength func(time.Duration)
	OnPreferences func()
}

// Window manages the main timer UI.
type Window struct {
	window       fyne.Window
	callbacks    Callbacks
	background   *canvas.Rectangle
	phaseLabel   *widget.Label
	displayLabel *widget.Label
	progress     *widget.ProgressBar
	roundSlider  *widget.Slider
	roundLabel   *widget.Label
	breakSlider  *widget.Slider
	breakLabel   *widget.Label
	toggleButton *widget.Button
	roundsLabel  *widget.Label
	focusLabel   *widget.Label
	banner       *widget.Label
}

// New creates the main window with sliders initialised from snapshot.
func New(app fyne.App, title string, snapshot roundtimer.Snapshot, callbacks Callbacks) *Window {
	window := app.NewWindow(title)

	background := canvas.NewRectangle(theme.ColorFor(snapshot.Phase.State))

	phaseLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	displayLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	progress := widget.NewProgressBar()

	roundSlider := widget.NewSlider(0, maxRoundMinutes)
	roundSlider.Step = 1
	roundSlider.Value = snapshot.RoundLength.Minutes()
	roundLabel := widget.NewLabel("")

	breakSlider := widget.NewSlider(1, maxBreakMinutes)
	breakSlider.Step = 1
	breakSlider.Value = snapshot.BreakLength.Minutes()
	breakLabel := widget.NewLabel("")

	toggleButton := widget.NewButton("Start", nil)
	resetButton := widget.NewButton("Reset", nil)
	preferencesButton := widget.NewButton("Preferences", nil)
	roundsLabel := widget.NewLabel("")
	focusLabel := widget.NewLabel("")
	banner := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	form := container.NewVBox(
		phaseLabel,
		displayLabel,
		progress,
		banner,
		container.NewBorder(nil, nil, widget.NewLabel("Round"), roundLabel, roundSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Break"), breakLabel, breakSlider),
		container.NewHBox(toggleButton, layout.NewSpacer(), preferencesButton),
		container.NewHBox(roundsLabel, layout.NewSpacer(), resetButton),
		focusLabel,
	)

	window.SetContent(container.NewStack(background, container.NewPadded(form)))
	window.Resize(fyne.NewSize(360, 340))

	view := &Window{
		window:       window,
		callbacks:    callbacks,
		background:   background,
		phaseLabel:   phaseLabel,
		displayLabel: displayLabel,
		progress:     progress,
		roundSlider:  roundSlider,
		roundLabel:   roundLabel,
		breakSlider:  breakSlider,
		breakLabel:   breakLabel,
		toggleButton: toggleButton,
		roundsLabel:  roundsLabel,
		focusLabel:   focusLabel,
		banner:       banner,
	}

	toggleButton.OnTapped = func() {
		if view.callbacks.OnToggle != nil {
			view.callbacks.OnToggle()
		}
	}
	resetButton.OnTapped = func() {
		if view.callbacks.OnResetRounds != nil {
			view.callbacks.OnResetRounds()
		}
	}
	preferencesButton.OnTapped = func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	}
	roundSlider.OnChanged = func(minutes float64) {
		if view.callbacks.OnRoundLength != nil {
			view.callbacks.OnRoundLength(minutesToDuration(minutes))
		}
	}
	breakSlider.OnChanged = func(minutes float64) {
		if view.callbacks.OnBreakLength != nil {
			view.callbacks.OnBreakLength(minutesToDuration(minutes))
		}
	}

	view.Render(snapshot)
	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Render updates every widget from snapshot. It must run on the fyne
// goroutine.
func (view *Window) Render(snapshot roundtimer.Snapshot) {
	fill := theme.ColorFor(snapshot.Phase.State)
	if view.background.FillColor != fill {
		view.background.FillColor = fill
		view.background.Refresh()
	}

	view.phaseLabel.SetText(PhaseTitle(snapshot.Phase.State))
	display := snapshot.Display
	if display == "" {
		display = "Press Start to begin a round"
	}
	view.displayLabel.SetText(display)
	view.progress.SetValue(snapshot.Progress)

	view.roundLabel.SetText(fmt.Sprintf("%d min", int(snapshot.RoundLength.Minutes())))
	view.breakLabel.SetText(fmt.Sprintf("%d min", int(snapshot.BreakLength.Minutes())))

	if snapshot.Phase.Active() {
		view.toggleButton.SetText("Stop")
	} else {
		view.toggleButton.SetText("Start")
	}
	if snapshot.RoundLength <= 0 && !snapshot.Phase.Active() {
		view.toggleButton.Disable()
	} else {
		view.toggleButton.Enable()
	}

	view.roundsLabel.SetText(fmt.Sprintf("Completed rounds: %d", snapshot.CompletedRounds))
	view.focusLabel.SetText("Focus time: " + FormatFocus(snapshot.FocusTime))
}

// Flash shows a transition message under the progress bar.
func (view *Window) Flash(message string) {
	view.banner.SetText(message)
}

// PhaseTitle is the heading for a phase state.
func PhaseTitle(state roundtimer.State) string {
	switch state {
	case roundtimer.StateRunning:
		return "Focus"
	case roundtimer.StateBreak:
		return "Break"
	default:
		return "Stopped"
	}
}

// FormatFocus renders accumulated focus time as hours and minutes.
func FormatFocus(total time.Duration) string {
	if total < 0 {
		total = 0
	}
	hours := int(total / time.Hour)
	minutes := int(total%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

func minutesToDuration(minutes float64) time.Duration {
	if minutes < 0 {
		return 0
	}
	return time.Duration(minutes * float64(time.Minute))
}

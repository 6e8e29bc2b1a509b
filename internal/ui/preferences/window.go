package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	breaks        *widget.Check
	trackFocus    *widget.Check
	sound         *widget.Check
	notifications *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Tomato Settings")

	breaks := widget.NewCheck("Take a break after each round", nil)
	trackFocus := widget.NewCheck("Track total focus time", nil)
	sound := widget.NewCheck("Play sounds", nil)
	notifications := widget.NewCheck("Show notifications", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Rounds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		breaks,
		trackFocus,
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		notifications,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(320, 240))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		breaks:        breaks,
		trackFocus:    trackFocus,
		sound:         sound,
		notifications: notifications,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.breaks.SetChecked(settings.BreaksEnabled)
	prefs.trackFocus.SetChecked(settings.TrackFocusTime)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.BreaksEnabled = prefs.breaks.Checked
	settings.TrackFocusTime = prefs.trackFocus.Checked
	settings.SoundEnabled = prefs.sound.Checked
	settings.NotificationsEnabled = prefs.notifications.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

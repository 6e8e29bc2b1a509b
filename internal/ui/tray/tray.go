package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"tomato/internal/core/roundtimer"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnResetRounds func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	title       string
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	active      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		title:       title,
		callbacks:   callbacks,
		statusLabel: "stopped",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start round", func() {
		invoke(manager.callbacks.OnToggle)
	})

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPhase shows state in the status item and the toggle. The menu is
// rebuilt only when state changes, so it is safe to call on every poll.
func (manager *Manager) SetPhase(state roundtimer.State) {
	switch state {
	case roundtimer.StateRunning:
		manager.SetStatus("focus")
	case roundtimer.StateBreak:
		manager.SetStatus("break")
	default:
		manager.SetStatus("stopped")
	}
	manager.SetActive(state != roundtimer.StateStopped)
}

// SetActive switches the toggle item between start and stop.
func (manager *Manager) SetActive(active bool) {
	if active == manager.active {
		return
	}
	manager.active = active
	if active {
		manager.toggleItem.Label = "Stop round"
	} else {
		manager.toggleItem.Label = "Start round"
	}
	manager.refreshMenu()
}

// Menu returns the menu currently installed.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.buildMenu()
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.buildMenu())
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			invoke(manager.callbacks.OnShow)
		}),
		manager.toggleItem,
		fyne.NewMenuItem("Reset rounds", func() {
			invoke(manager.callbacks.OnResetRounds)
		}),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	)
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	fynetheme "fyne.io/fyne/v2/theme"
	"golang.org/x/sync/errgroup"

	"tomato/internal/config"
	"tomato/internal/core/clock"
	"tomato/internal/core/roundtimer"
	"tomato/internal/effects"
	"tomato/internal/effects/notify"
	"tomato/internal/effects/sound"
	"tomato/internal/observability"
	"tomato/internal/platform"
	"tomato/internal/storage"
	"tomato/internal/ui/preferences"
	"tomato/internal/ui/timerwindow"
	"tomato/internal/ui/tray"
)

const appID = "com.tomato.app"

func main() {
	if err := run(); err != nil {
		slog.Error("tomato exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	options, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := observability.NewLogger(observability.LogConfig{
		Level:   options.Log.Level,
		Format:  options.Log.Format,
		File:    options.Log.File,
		AppName: options.AppName,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()

	lock, err := platform.LockInstance(options.AppName, platform.DriverDesktop)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running", slog.Any("error", err))
			return nil
		}
		return fmt.Errorf("lock instance: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	settings, err := storage.LoadSettings(options.AppName)
	if err != nil {
		logger.Warn("using default settings", slog.Any("error", err))
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(fynetheme.MediaPlayIcon())

	dispatcher := effects.New(effects.Options{
		QueueSize:            options.Effects.QueueSize,
		NotificationsEnabled: options.Effects.Notifications && settings.NotificationsEnabled,
		SoundEnabled:         options.Effects.Sound && settings.SoundEnabled,
	}, notify.NewFyne(fyneApp), sound.NewOtoPlayer(options.Effects.Volume, logger), logger)

	source := clock.System{}
	timer := roundtimer.New(settings.TimerConfig(), dispatcher)
	timer.RestoreCompletedRounds(settings.CompletedRounds)
	timer.RestoreFocusTime(settings.FocusTime)

	var (
		mainWindow  *timerwindow.Window
		trayManager *tray.Manager
		desktopApp  desktop.App
		trayActive  bool
	)

	render := func() {
		now := source.Now()
		timer.Tick(now)
		snapshot := timer.Snapshot(now)
		mainWindow.Render(snapshot)
		if trayManager != nil {
			trayManager.SetPhase(snapshot.Phase.State)
			if snapshot.Phase.Active() != trayActive {
				trayActive = snapshot.Phase.Active()
				desktopApp.SetSystemTrayIcon(trayIcon(trayActive))
			}
		}
	}

	toggle := func() {
		timer.Toggle(source.Now())
		render()
	}
	resetRounds := func() {
		timer.ResetCompletedRounds()
		render()
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		timer.SetBreaksEnabled(updated.BreaksEnabled)
		timer.SetTrackFocusTime(updated.TrackFocusTime)
		dispatcher.SetSoundEnabled(options.Effects.Sound && updated.SoundEnabled)
		dispatcher.SetNotificationsEnabled(options.Effects.Notifications && updated.NotificationsEnabled)
		if err := storage.SaveSettings(options.AppName, snapshotSettings(settings, timer, source.Now())); err != nil {
			logger.Warn("save settings failed", slog.Any("error", err))
		}
		render()
	})

	mainWindow = timerwindow.New(fyneApp, options.AppName, timer.Snapshot(source.Now()), timerwindow.Callbacks{
		OnToggle:      toggle,
		OnResetRounds: resetRounds,
		OnRoundLength: func(length time.Duration) {
			timer.SetRoundLength(length)
			render()
		},
		OnBreakLength: func(length time.Duration) {
			timer.SetBreakLength(length)
			render()
		},
		OnPreferences: prefsWindow.Show,
	})

	if candidate, ok := fyneApp.(desktop.App); ok {
		desktopApp = candidate
		trayManager = tray.New(desktopApp, options.AppName, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnToggle:      toggle,
			OnResetRounds: resetRounds,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(trayIcon(false))
		mainWindow.Window().SetCloseIntercept(mainWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported, closing the window quits")
		mainWindow.Window().SetMaster()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	transitions := dispatcher.Subscribe(4)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(options.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				fyne.Do(render)
			}
		}
	})
	g.Go(func() error {
		for transition := range transitions {
			effect := effects.EffectFor(transition)
			if effect.Title == "" {
				continue
			}
			message := effect.Title + " " + effect.Body
			fyne.Do(func() {
				mainWindow.Flash(message)
			})
		}
		return nil
	})

	mainWindow.Show()
	fyneApp.Run()

	cancel()
	if err := g.Wait(); err != nil {
		logger.Warn("background workers stopped with error", slog.Any("error", err))
	}

	if err := storage.SaveSettings(options.AppName, snapshotSettings(settings, timer, source.Now())); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	logger.Info("settings saved", slog.Int("completed_rounds", timer.CompletedRounds()))
	return nil
}

func trayIcon(active bool) fyne.Resource {
	if active {
		return fynetheme.MediaPlayIcon()
	}
	return fynetheme.MediaStopIcon()
}

func snapshotSettings(settings preferences.Settings, timer *roundtimer.RoundTimer, now time.Time) preferences.Settings {
	settings = settings.WithTimerConfig(timer.Config())
	settings.CompletedRounds = timer.CompletedRounds()
	settings.FocusTime = timer.FocusTime(now)
	return settings
}

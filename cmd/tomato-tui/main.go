package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"tomato/internal/config"
	"tomato/internal/core/clock"
	"tomato/internal/effects"
	"tomato/internal/effects/notify"
	"tomato/internal/effects/sound"
	"tomato/internal/observability"
	"tomato/internal/platform"
	"tomato/internal/storage"
	"tomato/internal/ui/terminal"
)

const logFileName = "tomato-tui.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tomato-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	options, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to bubbletea, so logs always go to a file.
	logFile := options.Log.File
	if logFile == "" {
		dir, err := platform.AppConfigDir(options.AppName)
		if err != nil {
			return err
		}
		logFile = filepath.Join(dir, logFileName)
	}
	logger, closeLog, err := observability.NewLogger(observability.LogConfig{
		Level:   options.Log.Level,
		Format:  options.Log.Format,
		File:    logFile,
		AppName: options.AppName + "TUI",
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()

	lock, err := platform.LockInstance(options.AppName, platform.DriverTerminal)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Unlock()
	}()

	settings, err := storage.LoadSettings(options.AppName)
	if err != nil {
		logger.Warn("using default settings", slog.Any("error", err))
	}

	dispatcher := effects.New(effects.Options{
		QueueSize:            options.Effects.QueueSize,
		NotificationsEnabled: options.Effects.Notifications && settings.NotificationsEnabled,
		SoundEnabled:         options.Effects.Sound && settings.SoundEnabled,
	}, notify.NewLog(logger), sound.NewOtoPlayer(options.Effects.Volume, logger), logger)

	source := clock.System{}
	timer := roundtimer.New(settings.TimerConfig(), dispatcher)
	timer.RestoreCompletedRounds(settings.CompletedRounds)
	timer.RestoreFocusTime(settings.FocusTime)

	model := terminal.NewModel(timer, source, options.PollInterval, dispatcher.Subscribe(4))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return terminal.Run(model, tea.WithAltScreen(), tea.WithContext(gctx))
	})
	runErr := g.Wait()

	// Every goroutine touching the timer has stopped.
	now := source.Now()
	settings = settings.WithTimerConfig(timer.Config())
	settings.CompletedRounds = timer.CompletedRounds()
	settings.FocusTime = timer.FocusTime(now)
	if err := storage.SaveSettings(options.AppName, settings); err != nil {
		return errors.Join(runErr, fmt.Errorf("save settings: %w", err))
	}
	logger.Info("session ended",
		slog.Int("completed_rounds", settings.CompletedRounds),
		slog.Duration("focus_time", settings.FocusTime),
		slog.String("phase", string(timer.Phase().State)))
	return runErr
}

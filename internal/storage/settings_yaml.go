package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"tomato/internal/platform"
	"tomato/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	RoundLengthSeconds   *int  `yaml:"round_length_seconds,omitempty"`
	BreakLengthSeconds   int   `yaml:"break_length_seconds"`
	BreaksEnabled        *bool `yaml:"breaks_enabled,omitempty"`
	TrackFocusTime       *bool `yaml:"track_focus_time,omitempty"`
	SoundEnabled         *bool `yaml:"sound_enabled,omitempty"`
	NotificationsEnabled *bool `yaml:"notifications_enabled,omitempty"`
	CompletedRounds      int   `yaml:"completed_rounds"`
	FocusSeconds         int64 `yaml:"focus_seconds"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	dir, err := platform.AppConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(dir, settingsFileName), nil
}

// LoadSettings reads user preferences for appName.
// If the settings file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	path, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(path)
}

// SaveSettings writes user preferences for appName.
func SaveSettings(appName string, settings preferences.Settings) error {
	path, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(path, settings)
}

// LoadSettingsFile reads preferences from path, starting from defaults.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to path, creating its directory.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		RoundLengthSeconds:   intPtr(int(settings.RoundLength / time.Second)),
		BreakLengthSeconds:   int(settings.BreakLength / time.Second),
		BreaksEnabled:        boolPtr(settings.BreaksEnabled),
		TrackFocusTime:       boolPtr(settings.TrackFocusTime),
		SoundEnabled:         boolPtr(settings.SoundEnabled),
		NotificationsEnabled: boolPtr(settings.NotificationsEnabled),
		CompletedRounds:      settings.CompletedRounds,
		FocusSeconds:         int64(settings.FocusTime / time.Second),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	// A zero round is a saved choice; Start refuses it until a length is set.
	if fileData.RoundLengthSeconds != nil && *fileData.RoundLengthSeconds >= 0 {
		settings.RoundLength = time.Duration(*fileData.RoundLengthSeconds) * time.Second
	}
	if fileData.BreakLengthSeconds > 0 {
		settings.BreakLength = time.Duration(fileData.BreakLengthSeconds) * time.Second
	}
	if fileData.BreaksEnabled != nil {
		settings.BreaksEnabled = *fileData.BreaksEnabled
	}
	if fileData.TrackFocusTime != nil {
		settings.TrackFocusTime = *fileData.TrackFocusTime
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.CompletedRounds > 0 {
		settings.CompletedRounds = fileData.CompletedRounds
	}
	if fileData.FocusSeconds > 0 {
		settings.FocusTime = time.Duration(fileData.FocusSeconds) * time.Second
	}
}

func boolPtr(value bool) *bool {
	return &value
}

func intPtr(value int) *int {
	return &value
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings represents user-configurable settings stored in
// ~/.tasksai/settings.yaml. The credential is never read from here.
type Settings struct {
	// Provider selects the backend: gemini (default) or bedrock
	Provider string `yaml:"provider"`
	// Model overrides the provider's default model ID
	Model string `yaml:"model"`
	// Endpoint overrides the Gemini API base URL
	Endpoint string `yaml:"endpoint"`
	// Region is the AWS region used by the bedrock provider
	Region string `yaml:"region"`
	// Theme is the color preset name
	Theme string `yaml:"theme"`
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		Provider: string(ProviderGemini),
		Theme:    "default",
	}
}

// SettingsPath returns the path to the settings file
func SettingsPath() (string, error) {
	if path := os.Getenv("TASKSAI_SETTINGS"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tasksai", "settings.yaml"), nil
}

// LoadSettings loads settings from the settings file.
// Returns default settings if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		// Can't determine home directory - defaults are fine
		return DefaultSettings(), nil //nolint:nilerr // intentional: return defaults when path unavailable
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings from a specific path, keeping defaults for
// missing fields.
func LoadSettingsFrom(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return settings, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// QuizConfig controls the quiz engine
type QuizConfig struct {
	AdvanceDelayMS int    `json:"advanceDelayMs,omitempty"`
	Seed           uint64 `json:"seed,omitempty"` // 0 = random
	Locale         string `json:"locale,omitempty"`
}

// MIDIConfig controls MIDI controller input
type MIDIConfig struct {
	InputPort   string `json:"inputPort,omitempty"` // empty = any keyboard
	AutoConnect bool   `json:"autoConnect"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // path to a GIMP .gpl file
	Debug   bool   `json:"debug,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Quiz QuizConfig `json:"quiz"`
	MIDI MIDIConfig `json:"midi"`
	UI   UIConfig   `json:"ui"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Quiz: QuizConfig{
			AdvanceDelayMS: 1000,
			Locale:         "en",
		},
		MIDI: MIDIConfig{
			AutoConnect: true,
		},
	}
}

// AdvanceDelay returns the pause after a correct answer
func (c *Config) AdvanceDelay() time.Duration {
	if c.Quiz.AdvanceDelayMS <= 0 {
		return time.Second
	}
	return time.Duration(c.Quiz.AdvanceDelayMS) * time.Millisecond
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "note-quiz"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DebugLogPath returns the full path to debug.log
func DebugLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// Load reads the config from the default path, or returns defaults if not
// found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults; fields
// absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys such as storage.path to STORAGE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// StorageConfig controls where habit and preference state is persisted.
type StorageConfig struct {
	// Path is the SQLite database file. ":memory:" keeps state for the
	// lifetime of the process only.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Language is a BCP 47 tag ("en", "tr"). Empty means detect from the
	// environment.
	Language string `mapstructure:"language" yaml:"language"`

	// Theme seeds the theme on first run: "system", "light" or "dark".
	// Once toggled, the persisted preference wins.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// ReminderConfig controls in-app reminder notifications.
type ReminderConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// LogConfig controls the file logger. The terminal belongs to the UI, so
// logs never go to stdout.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage   StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Display   DisplayConfig  `mapstructure:"display" yaml:"display"`
	Reminders ReminderConfig `mapstructure:"reminders" yaml:"reminders"`
	Log       LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/habits/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultDataPath returns the default database location,
// ~/.local/share/habits/habits.db.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "habits.db"
	}
	return filepath.Join(home, ".local", "share", "habits", "habits.db")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "habits")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Path: DefaultDataPath(),
		},
		Display: DisplayConfig{
			Theme: "system",
		},
		Reminders: ReminderConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Path:  filepath.Join(configDir(), "habits.log"),
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with HABITS_ override file values
// (HABITS_STORAGE_PATH, HABITS_DISPLAY_LANGUAGE, ...). If the file does not
// exist, defaults are used.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("habits")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("display.language", def.Display.Language)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("reminders.enabled", def.Reminders.Enabled)
	v.SetDefault("log.path", def.Log.Path)
	v.SetDefault("log.level", def.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Display.Theme {
	case "system", string(ThemeLight), string(ThemeDark):
	case "":
		cfg.Display.Theme = "system"
	default:
		return nil, fmt.Errorf("parsing config %s: unknown display.theme %q", path, cfg.Display.Theme)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("reminders", cfg.Reminders)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Update  UpdateConfig  `mapstructure:"update"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// UpdateConfig holds update pipeline configuration
type UpdateConfig struct {
	BaseURL string `mapstructure:"base_url"` // Root URL of the data snapshots
	Lang    string `mapstructure:"lang"`     // Preferred gloss language
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	ShowStrokeCount bool   `mapstructure:"show_stroke_count"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Update: UpdateConfig{
			BaseURL: "https://data.jiten.dev/kanjidb",
			Lang:    "en",
		},
		UI: UIConfig{
			Theme:           "default",
			ShowStrokeCount: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "jiten", "jiten.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "jiten", "jiten.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "jiten")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "jiten")
	}
}

// defaultDataPath returns the data directory holding the local database
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "jiten", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "jiten", "data")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("JITEN")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("update.base_url", cfg.Update.BaseURL)
	viper.Set("update.lang", cfg.Update.Lang)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.show_stroke_count", cfg.UI.ShowStrokeCount)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveLang updates just the preferred gloss language in the configuration
func SaveLang(lang string) error {
	viper.Set("update.lang", lang)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDataPath returns the data directory path
func GetDataPath() string {
	return defaultDataPath()
}

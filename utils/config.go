package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Chat ChatConfig `json:"chat"`
	UI   UIConfig   `json:"ui"`
	Data DataConfig `json:"data"`
}

// ChatConfig represents chat behavior configuration
type ChatConfig struct {
	DefaultModel       string   `json:"default_model"`
	Models             []string `json:"models,omitempty"`
	ResponseDelayMS    int      `json:"response_delay_ms"`
	BotResponseDelayMS int      `json:"bot_response_delay_ms"`
	MaxFileSizeBytes   int64    `json:"max_file_size_bytes"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	ShowTimestamps bool `json:"show_timestamps"`
	Color          bool `json:"color"`
}

// DataConfig represents data storage configuration
type DataConfig struct {
	DBPath    string `json:"db_path"`
	ExportDir string `json:"export_dir"`
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths
	if config.Data.DBPath != "" {
		config.Data.DBPath = expandPath(config.Data.DBPath)
	}
	if config.Data.ExportDir != "" {
		config.Data.ExportDir = expandPath(config.Data.ExportDir)
	}

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	// Make absolute
	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	// Try to get user config directory
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return "./config/default.json"
	}

	return filepath.Join(configDir, "ai-chat-client", "config.json")
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() *Config {
	return &Config{
		Chat: ChatConfig{
			DefaultModel: "claude-3-7-sonnet",
			Models: []string{
				"claude-3-opus",
				"claude-3-5-sonnet",
				"claude-3-7-sonnet",
				"claude-3-5-haiku",
				"gpt-4o",
				"gpt-4-turbo",
			},
			ResponseDelayMS:    1500,
			BotResponseDelayMS: 2000,
			MaxFileSizeBytes:   10 * 1024 * 1024,
		},
		UI: UIConfig{
			ShowTimestamps: true,
			Color:          true,
		},
		Data: DataConfig{
			DBPath:    "./data/chat.db",
			ExportDir: ".",
		},
	}
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	// Check if config exists
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := SaveConfig(configPath, DefaultConfig()); err != nil {
		return "", err
	}

	return configPath, nil
}

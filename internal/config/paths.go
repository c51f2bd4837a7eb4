package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the default directory name for ec2ctl settings
	DefaultConfigDir = ".ec2ctl"
	// DefaultConfigName is the default config file name
	DefaultConfigName = "config.yaml"
	// EnvConfigDir overrides the config directory
	EnvConfigDir = "EC2CTL_CONFIG_DIR"
)

// GetConfigDir returns the ec2ctl configuration directory path
// Defaults to ~/.ec2ctl/ unless overridden by environment
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}

// DefaultConfigPath returns the path of the default config file.
// The file does not need to exist.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	return configDir, nil
}

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"simpletimer/internal/core/model"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"data_dir"`
	TickIntervalMs int    `yaml:"tick_interval_ms"`
	KeepScreenOn   *bool  `yaml:"keep_screen_on"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig reads application settings from YAML.
// An empty path means the default location under the user config dir.
// If the file does not exist, default settings are returned.
func LoadConfig(appName, path string) (model.Config, error) {
	config := model.DefaultConfig()
	if path == "" {
		resolved, err := ResolveConfigPath(appName)
		if err != nil {
			return config, err
		}
		path = resolved
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

// ResolveConfigPath returns the default config.yaml location.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// ResolveDataDir fills in config.DataDir when it was left empty.
func ResolveDataDir(appName string, config model.Config) (model.Config, error) {
	if config.DataDir != "" {
		return config, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return config, fmt.Errorf("resolve user config dir: %w", err)
	}
	config.DataDir = filepath.Join(configDir, appName)
	return config, nil
}

func applyYamlConfig(config *model.Config, fileData yamlConfig) {
	if fileData.Backend != "" {
		config.Backend = fileData.Backend
	}
	if fileData.DataDir != "" {
		config.DataDir = fileData.DataDir
	}
	if fileData.TickIntervalMs > 0 {
		config.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}
	if fileData.KeepScreenOn != nil {
		config.KeepScreenOn = *fileData.KeepScreenOn
	}
	if fileData.LogLevel != "" {
		config.LogLevel = fileData.LogLevel
	}
}

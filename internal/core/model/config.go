package model

import "time"

// Backend names accepted in Config.Backend.
const (
	BackendBolt   = "bolt"
	BackendYAML   = "yaml"
	BackendMemory = "memory"
)

// Config contains application settings loaded from config.yaml and flags.
type Config struct {
	Backend      string
	DataDir      string
	TickInterval time.Duration
	KeepScreenOn bool
	LogLevel     string
}

// DefaultConfig returns the settings used when no config file exists.
// DataDir is left empty and resolved by the storage layer.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendBolt,
		TickInterval: time.Second,
		KeepScreenOn: true,
		LogLevel:     "info",
	}
}

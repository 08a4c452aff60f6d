package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"simpletimer/internal/core/model"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is the durable home of the timer record and theme preferences.
// Reads always return a usable value: absent or corrupt fields fall back to
// the model defaults, and an error is only reported for I/O failures.
type Store interface {
	WriteTimer(ctx context.Context, record model.TimerRecord) error
	ReadTimer(ctx context.Context) (model.TimerRecord, error)
	WritePreferences(ctx context.Context, prefs model.Preferences) error
	ReadPreferences(ctx context.Context) (model.Preferences, error)
}

const (
	boltFileName = "timer_store.db"
	yamlFileName = "timer_store.yaml"
)

// Open creates the store selected by config.Backend inside config.DataDir.
func Open(config model.Config) (Store, error) {
	switch config.Backend {
	case model.BackendBolt, "":
		return NewBoltStore(filepath.Join(config.DataDir, boltFileName)), nil
	case model.BackendYAML:
		return NewYAMLStore(filepath.Join(config.DataDir, yamlFileName)), nil
	case model.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
	}
}

func recordFromFields(remaining *int64, stateName *string) model.TimerRecord {
	record := model.DefaultTimerRecord()
	if remaining != nil && *remaining >= 0 {
		record.RemainingMillis = *remaining
	}
	if stateName != nil {
		if state, ok := model.ParseTimerState(*stateName); ok {
			record.State = state
		}
	}
	return record
}

func preferencesFromFields(useSystem, darkManual *bool) model.Preferences {
	prefs := model.DefaultPreferences()
	if useSystem != nil {
		prefs.UseSystemTheme = *useSystem
	}
	if darkManual != nil {
		prefs.DarkThemeManual = *darkManual
	}
	return prefs
}

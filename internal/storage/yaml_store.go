package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"simpletimer/internal/core/model"

	"gopkg.in/yaml.v3"
)

type yamlStoreFile struct {
	RemainingMillis *int64  `yaml:"remaining_ms,omitempty"`
	State           *string `yaml:"state,omitempty"`
	UseSystemTheme  *bool   `yaml:"use_system_theme,omitempty"`
	DarkThemeManual *bool   `yaml:"dark_theme_manual,omitempty"`
}

// YAMLStore keeps the four fields in a single YAML document.
type YAMLStore struct {
	mu   sync.Mutex
	path string
}

// NewYAMLStore returns a store backed by the YAML file at path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// WriteTimer stores remaining_ms and state, keeping the preference fields.
func (store *YAMLStore) WriteTimer(ctx context.Context, record model.TimerRecord) error {
	return store.modify(ctx, func(fileData *yamlStoreFile) {
		remaining := record.RemainingMillis
		stateName := record.State.String()
		fileData.RemainingMillis = &remaining
		fileData.State = &stateName
	})
}

// ReadTimer loads remaining_ms and state.
func (store *YAMLStore) ReadTimer(ctx context.Context) (model.TimerRecord, error) {
	fileData, err := store.load(ctx)
	if err != nil {
		return model.DefaultTimerRecord(), err
	}
	return recordFromFields(fileData.RemainingMillis, fileData.State), nil
}

// WritePreferences stores both theme flags, keeping the timer fields.
func (store *YAMLStore) WritePreferences(ctx context.Context, prefs model.Preferences) error {
	return store.modify(ctx, func(fileData *yamlStoreFile) {
		useSystem := prefs.UseSystemTheme
		darkManual := prefs.DarkThemeManual
		fileData.UseSystemTheme = &useSystem
		fileData.DarkThemeManual = &darkManual
	})
}

// ReadPreferences loads both theme flags.
func (store *YAMLStore) ReadPreferences(ctx context.Context) (model.Preferences, error) {
	fileData, err := store.load(ctx)
	if err != nil {
		return model.DefaultPreferences(), err
	}
	return preferencesFromFields(fileData.UseSystemTheme, fileData.DarkThemeManual), nil
}

func (store *YAMLStore) load(ctx context.Context) (yamlStoreFile, error) {
	if err := ctx.Err(); err != nil {
		return yamlStoreFile{}, err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.readFileLocked()
}

func (store *YAMLStore) readFileLocked() (yamlStoreFile, error) {
	var fileData yamlStoreFile
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileData, nil
		}
		return fileData, fmt.Errorf("read store file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return yamlStoreFile{}, fmt.Errorf("parse store yaml: %w", err)
	}
	return fileData, nil
}

func (store *YAMLStore) modify(ctx context.Context, change func(*yamlStoreFile)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	// A corrupt document is replaced rather than blocking every later write.
	fileData, err := store.readFileLocked()
	if err != nil {
		fileData = yamlStoreFile{}
	}
	change(&fileData)

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal store yaml: %w", err)
	}
	return writeFileAtomic(store.path, serialized)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	temp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tempName := temp.Name()
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempName)
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

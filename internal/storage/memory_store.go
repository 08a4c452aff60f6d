package storage

import (
	"context"
	"sync"

	"simpletimer/internal/core/model"
)

// MemoryStore is a process-local Store. Nothing survives a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	timer     *model.TimerRecord
	prefs     *model.Preferences
	timerSets int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// WriteTimer stores the timer record.
func (store *MemoryStore) WriteTimer(ctx context.Context, record model.TimerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.timer = &record
	store.timerSets++
	return nil
}

// ReadTimer returns the stored record, or the default when none is valid.
func (store *MemoryStore) ReadTimer(ctx context.Context) (model.TimerRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.DefaultTimerRecord(), err
	}
	store.mu.RLock()
	defer store.mu.RUnlock()
	if store.timer == nil {
		return model.DefaultTimerRecord(), nil
	}
	if !store.timer.State.Valid() || store.timer.RemainingMillis < 0 {
		return model.DefaultTimerRecord(), nil
	}
	return *store.timer, nil
}

// WritePreferences stores both theme flags.
func (store *MemoryStore) WritePreferences(ctx context.Context, prefs model.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.prefs = &prefs
	return nil
}

// ReadPreferences returns the stored flags, or the defaults.
func (store *MemoryStore) ReadPreferences(ctx context.Context) (model.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return model.DefaultPreferences(), err
	}
	store.mu.RLock()
	defer store.mu.RUnlock()
	if store.prefs == nil {
		return model.DefaultPreferences(), nil
	}
	return *store.prefs, nil
}

// TimerWrites reports how many timer records have been written.
func (store *MemoryStore) TimerWrites() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.timerSets
}

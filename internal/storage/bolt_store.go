package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"simpletimer/internal/core/model"

	bolt "go.etcd.io/bbolt"
)

var (
	timerBucket = []byte("timer_store")

	keyRemaining       = []byte("remaining_ms")
	keyState           = []byte("state")
	keyUseSystemTheme  = []byte("use_system_theme")
	keyDarkThemeManual = []byte("dark_theme_manual")
)

const boltLockTimeout = time.Second

// BoltStore keeps the four fields as keys of one bbolt bucket.
// The database is opened per operation so that other processes, such as the
// status command, can read it while a host is ticking.
type BoltStore struct {
	path string
}

// NewBoltStore returns a store backed by the bbolt file at path.
func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

// Path returns the database file location.
func (store *BoltStore) Path() string {
	return store.path
}

// WriteTimer stores remaining_ms and state.
func (store *BoltStore) WriteTimer(ctx context.Context, record model.TimerRecord) error {
	return store.update(ctx, map[string][]byte{
		string(keyRemaining): []byte(strconv.FormatInt(record.RemainingMillis, 10)),
		string(keyState):     []byte(record.State.String()),
	})
}

// ReadTimer loads remaining_ms and state.
func (store *BoltStore) ReadTimer(ctx context.Context) (model.TimerRecord, error) {
	var (
		remaining *int64
		stateName *string
	)
	err := store.view(ctx, func(bucket *bolt.Bucket) {
		if raw := bucket.Get(keyRemaining); raw != nil {
			if parsed, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
				remaining = &parsed
			}
		}
		if raw := bucket.Get(keyState); raw != nil {
			name := string(raw)
			stateName = &name
		}
	})
	if err != nil {
		return model.DefaultTimerRecord(), err
	}
	return recordFromFields(remaining, stateName), nil
}

// WritePreferences stores both theme flags.
func (store *BoltStore) WritePreferences(ctx context.Context, prefs model.Preferences) error {
	return store.update(ctx, map[string][]byte{
		string(keyUseSystemTheme):  []byte(strconv.FormatBool(prefs.UseSystemTheme)),
		string(keyDarkThemeManual): []byte(strconv.FormatBool(prefs.DarkThemeManual)),
	})
}

// ReadPreferences loads both theme flags.
func (store *BoltStore) ReadPreferences(ctx context.Context) (model.Preferences, error) {
	var useSystem, darkManual *bool
	err := store.view(ctx, func(bucket *bolt.Bucket) {
		useSystem = parseBoolValue(bucket.Get(keyUseSystemTheme))
		darkManual = parseBoolValue(bucket.Get(keyDarkThemeManual))
	})
	if err != nil {
		return model.DefaultPreferences(), err
	}
	return preferencesFromFields(useSystem, darkManual), nil
}

func (store *BoltStore) update(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := bolt.Open(store.path, 0o600, &bolt.Options{Timeout: boltLockTimeout})
	if err != nil {
		return fmt.Errorf("open bolt store: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(timerBucket)
		if err != nil {
			return err
		}
		for key, value := range values {
			if err := bucket.Put([]byte(key), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write bolt store: %w", err)
	}
	return nil
}

// view runs read against the bucket. A missing file or bucket is a first
// run and leaves read uncalled.
func (store *BoltStore) view(ctx context.Context, read func(bucket *bolt.Bucket)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(store.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat bolt store: %w", err)
	}

	db, err := bolt.Open(store.path, 0o600, &bolt.Options{Timeout: boltLockTimeout, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open bolt store: %w", err)
	}
	defer db.Close()

	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(timerBucket)
		if bucket == nil {
			return nil
		}
		read(bucket)
		return nil
	})
	if err != nil {
		return fmt.Errorf("read bolt store: %w", err)
	}
	return nil
}

// parseBoolValue copies the flag out of bolt-owned memory; corrupt values read as absent.
func parseBoolValue(raw []byte) *bool {
	if raw == nil {
		return nil
	}
	parsed, err := strconv.ParseBool(string(raw))
	if err != nil {
		return nil
	}
	return &parsed
}

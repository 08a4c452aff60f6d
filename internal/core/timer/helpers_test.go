package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"simpletimer/internal/core/model"
	"simpletimer/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

// manualClock hands out unbuffered tickers; Tick fires the newest one and
// returns once the countdown goroutine has received it.
type manualClock struct {
	mu      sync.Mutex
	current *manualTicker
	created int
}

type manualTicker struct {
	ch chan time.Time
}

func (ticker *manualTicker) C() <-chan time.Time { return ticker.ch }
func (ticker *manualTicker) Stop() {}

func (clock *manualClock) NewTicker(time.Duration) Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = &manualTicker{ch: make(chan time.Time)}
	clock.created++
	return clock.current
}

func (clock *manualClock) Tickers() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.created
}

func (clock *manualClock) Tick(t *testing.T) {
	t.Helper()
	clock.mu.Lock()
	ticker := clock.current
	clock.mu.Unlock()
	require.NotNil(t, ticker, "no countdown was started")

	select {
	case ticker.ch <- time.Now():
	case <-time.After(waitTimeout):
		t.Fatal("tick was not consumed")
	}
}

type failingStore struct {
	mu     sync.Mutex
	writes int
}

var errDiskGone = errors.New("disk gone")

func (store *failingStore) WriteTimer(context.Context, model.TimerRecord) error {
	store.mu.Lock()
	store.writes++
	store.mu.Unlock()
	return errDiskGone
}

func (store *failingStore) ReadTimer(context.Context) (model.TimerRecord, error) {
	return model.DefaultTimerRecord(), errDiskGone
}

func (store *failingStore) WritePreferences(context.Context, model.Preferences) error {
	store.mu.Lock()
	store.writes++
	store.mu.Unlock()
	return errDiskGone
}

func (store *failingStore) ReadPreferences(context.Context) (model.Preferences, error) {
	return model.DefaultPreferences(), errDiskGone
}

func (store *failingStore) Writes() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.writes
}

type harness struct {
	engine   *Engine
	clock    *manualClock
	store    *storage.MemoryStore
	observer <-chan Snapshot
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := &manualClock{}
	store := storage.NewMemoryStore()
	engine := New(store, Options{Clock: clock}, zerolog.Nop())
	t.Cleanup(engine.Close)
	return &harness{
		engine:   engine,
		clock:    clock,
		store:    store,
		observer: engine.Subscribe(256),
	}
}

// next returns the next published snapshot.
func (h *harness) next(t *testing.T) Snapshot {
	t.Helper()
	select {
	case snapshot, ok := <-h.observer:
		require.True(t, ok, "observer closed")
		return snapshot
	case <-time.After(waitTimeout):
		t.Fatal("no snapshot published")
		return Snapshot{}
	}
}

// tick advances one second and returns the snapshot it produced.
func (h *harness) tick(t *testing.T) Snapshot {
	t.Helper()
	h.clock.Tick(t)
	return h.next(t)
}

func (h *harness) drain() []Snapshot {
	var drained []Snapshot
	for {
		select {
		case snapshot, ok := <-h.observer:
			if !ok {
				return drained
			}
			drained = append(drained, snapshot)
		default:
			return drained
		}
	}
}

func (h *harness) setInputs(t *testing.T, minutes, seconds string) {
	t.Helper()
	h.engine.UpdateMinutes(minutes)
	h.next(t)
	h.engine.UpdateSeconds(seconds)
	h.next(t)
}

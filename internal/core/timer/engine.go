package timer

import (
	"context"
	"sync"
	"time"

	"simpletimer/internal/core/model"
	"simpletimer/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MessageZeroDuration is shown when Start is called with 00:00.
const MessageZeroDuration = "Set a time greater than 00:00"

// Options contains runtime options for the Engine.
type Options struct {
	// TickInterval is the wait between decrements. Each tick always removes
	// one second of remaining time.
	TickInterval time.Duration
	Clock        Clock
}

// Engine is the countdown state machine. A single mutex guards the current
// snapshot; every command builds the next snapshot and replaces it whole.
type Engine struct {
	mu              sync.Mutex
	options         Options
	store           storage.Store
	logger          zerolog.Logger
	snapshot        Snapshot
	pausedRemaining int64
	generation      uint64
	cancelTick      context.CancelFunc
	countdownID     string
	subscribers     []chan Snapshot
	persist         *persister
	closed          bool
}

// New creates an idle Engine that mirrors its state to store.
func New(store storage.Store, options Options, logger zerolog.Logger) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}

	snapshot := DefaultSnapshot()
	return &Engine{
		options:         options,
		store:           store,
		logger:          logger,
		snapshot:        snapshot,
		pausedRemaining: snapshot.RemainingMillis,
		persist:         newPersister(logger),
	}
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshot
}

// Subscribe registers a new observer channel. Snapshots are delivered in
// publish order; when the buffer is full the oldest buffered value is
// dropped for that observer, so the newest snapshot is never lost.
func (engine *Engine) Subscribe(buffer int) <-chan Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.subscribers = append(engine.subscribers, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes an observer channel.
func (engine *Engine) Unsubscribe(observer <-chan Snapshot) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for index, ch := range engine.subscribers {
		if ch == observer {
			engine.subscribers = append(engine.subscribers[:index], engine.subscribers[index+1:]...)
			close(ch)
			return
		}
	}
}

// Start begins a countdown from the input fields. It only acts in Idle or
// Finished; a zero duration sets the validation message instead.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	next := engine.snapshot
	if next.State != model.StateIdle && next.State != model.StateFinished {
		return
	}

	total := TotalMillis(next.InputMinutes, next.InputSeconds)
	if total <= 0 {
		next.Error = ErrorText(MessageZeroDuration)
		engine.commitLocked(next, false)
		return
	}

	engine.countdownID = uuid.NewString()
	engine.logger.Info().
		Str("countdown_id", engine.countdownID).
		Int64("remaining_ms", total).
		Msg("countdown started")
	engine.beginCountdownLocked(next, total)
}

// Pause freezes a running countdown.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.snapshot.State != model.StateRunning {
		return
	}

	engine.cancelTickLocked()
	next := engine.snapshot
	engine.pausedRemaining = next.RemainingMillis
	next.State = model.StatePaused
	engine.logger.Info().
		Str("countdown_id", engine.countdownID).
		Int64("remaining_ms", next.RemainingMillis).
		Msg("countdown paused")
	engine.commitLocked(next, true)
}

// Resume continues a paused countdown from the saved remaining time.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.snapshot.State != model.StatePaused {
		return
	}

	engine.logger.Info().
		Str("countdown_id", engine.countdownID).
		Int64("remaining_ms", engine.pausedRemaining).
		Msg("countdown resumed")
	engine.beginCountdownLocked(engine.snapshot, engine.pausedRemaining)
}

// Reset returns to Idle with the duration taken from the input fields.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	engine.cancelTickLocked()
	next := engine.snapshot
	next.State = model.StateIdle
	next.RemainingMillis = TotalMillis(next.InputMinutes, next.InputSeconds)
	next.Error = NoError()
	next.JustFinished = false
	engine.pausedRemaining = next.RemainingMillis
	engine.logger.Debug().Str("countdown_id", engine.countdownID).Msg("countdown reset")
	engine.commitLocked(next, true)
}

// UpdateMinutes replaces the minutes field with the filtered text.
func (engine *Engine) UpdateMinutes(text string) {
	engine.updateInput(func(next *Snapshot) {
		next.InputMinutes = FilterInput(text)
	})
}

// UpdateSeconds replaces the seconds field with the filtered text.
func (engine *Engine) UpdateSeconds(text string) {
	engine.updateInput(func(next *Snapshot) {
		next.InputSeconds = FilterInput(text)
	})
}

// AckFinishHandled clears the JustFinished flag once the host has alerted.
func (engine *Engine) AckFinishHandled() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || !engine.snapshot.JustFinished {
		return
	}

	next := engine.snapshot
	next.JustFinished = false
	engine.commitLocked(next, false)
}

// SetUseSystemTheme toggles following the desktop theme.
func (engine *Engine) SetUseSystemTheme(enabled bool) {
	engine.updatePreferences(func(next *Snapshot) {
		next.UseSystemTheme = enabled
	})
}

// SetDarkThemeManual selects dark or light when not following the desktop.
func (engine *Engine) SetDarkThemeManual(dark bool) {
	engine.updatePreferences(func(next *Snapshot) {
		next.DarkThemeManual = dark
	})
}

// SetKeepScreenOn records the keep-screen-on preference. It is not persisted.
func (engine *Engine) SetKeepScreenOn(enabled bool) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	next := engine.snapshot
	next.KeepScreenOn = enabled
	engine.commitLocked(next, false)
}

// LoadPreferences applies the persisted theme preferences. On a read
// failure the defaults are applied and the error is returned.
func (engine *Engine) LoadPreferences(ctx context.Context) error {
	prefs, err := engine.store.ReadPreferences(ctx)
	if err != nil {
		engine.logger.Warn().Err(err).Msg("load preferences")
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return err
	}
	next := engine.snapshot
	next.UseSystemTheme = prefs.UseSystemTheme
	next.DarkThemeManual = prefs.DarkThemeManual
	engine.commitLocked(next, false)
	return err
}

// Restore seeds an idle engine from a persisted record. An interrupted
// countdown comes back Paused so the user decides whether to resume; a
// finished one comes back Finished without raising JustFinished again.
// It reports whether the record was applied.
func (engine *Engine) Restore(record model.TimerRecord) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.snapshot.State != model.StateIdle || engine.cancelTick != nil {
		return false
	}

	next := engine.snapshot
	switch record.State {
	case model.StateRunning, model.StatePaused:
		if record.RemainingMillis <= 0 {
			return false
		}
		next.State = model.StatePaused
		next.RemainingMillis = record.RemainingMillis
		engine.pausedRemaining = record.RemainingMillis
	case model.StateFinished:
		next.State = model.StateFinished
		next.RemainingMillis = 0
	default:
		return false
	}

	engine.countdownID = uuid.NewString()
	engine.logger.Info().
		Str("countdown_id", engine.countdownID).
		Str("state", next.State.String()).
		Int64("remaining_ms", next.RemainingMillis).
		Msg("countdown restored")
	engine.commitLocked(next, true)
	return true
}

// Close stops the tick task, closes observers and waits for queued
// persistence writes. The engine ignores commands afterwards.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.cancelTickLocked()
	subscribers := engine.subscribers
	engine.subscribers = nil
	engine.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
	engine.persist.close()
}

func (engine *Engine) updateInput(change func(next *Snapshot)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	next := engine.snapshot
	change(&next)

	recompute := next.State == model.StateIdle || next.State == model.StateFinished
	if recompute {
		next.InputSeconds = normalizeSeconds(next.InputSeconds)
		next.RemainingMillis = TotalMillis(next.InputMinutes, next.InputSeconds)
		next.Error = NoError()
		// Finished requires RemainingMillis == 0, so a recomputed duration is Idle.
		next.State = model.StateIdle
		engine.pausedRemaining = next.RemainingMillis
	}
	engine.commitLocked(next, recompute)
}

func (engine *Engine) updatePreferences(change func(next *Snapshot)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	next := engine.snapshot
	change(&next)
	engine.commitLocked(next, false)

	prefs := next.Preferences()
	engine.persist.enqueue("preferences", func(ctx context.Context) error {
		return engine.store.WritePreferences(ctx, prefs)
	})
}

func (engine *Engine) beginCountdownLocked(next Snapshot, from int64) {
	engine.cancelTickLocked()

	next.State = model.StateRunning
	next.RemainingMillis = from
	next.Error = NoError()
	next.JustFinished = false
	engine.commitLocked(next, true)

	engine.generation++
	ctx, cancel := context.WithCancel(context.Background())
	engine.cancelTick = cancel
	ticker := engine.options.Clock.NewTicker(engine.options.TickInterval)
	go engine.run(ctx, ticker, engine.generation)
}

func (engine *Engine) cancelTickLocked() {
	if engine.cancelTick != nil {
		engine.cancelTick()
		engine.cancelTick = nil
	}
}

func (engine *Engine) run(ctx context.Context, ticker Ticker, generation uint64) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if !engine.tick(generation) {
				return
			}
		}
	}
}

// tick removes one second from a running countdown. It reports whether the
// task should keep ticking.
func (engine *Engine) tick(generation uint64) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || generation != engine.generation || engine.snapshot.State != model.StateRunning {
		return false
	}

	next := engine.snapshot
	next.RemainingMillis -= tickStepMillis
	if next.RemainingMillis > 0 {
		engine.commitLocked(next, true)
		return true
	}

	next.RemainingMillis = 0
	next.State = model.StateFinished
	next.JustFinished = true
	engine.cancelTickLocked()
	engine.pausedRemaining = 0
	engine.logger.Info().Str("countdown_id", engine.countdownID).Msg("countdown finished")
	engine.commitLocked(next, true)
	return false
}

// commitLocked replaces the snapshot, notifies observers and, when asked,
// queues a write of the timing record.
func (engine *Engine) commitLocked(next Snapshot, persistTimer bool) {
	engine.snapshot = next
	for _, ch := range engine.subscribers {
		select {
		case ch <- next:
		default:
			// Full buffer: replace the oldest value so the observer's last
			// value is always the current snapshot.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}

	if !persistTimer {
		return
	}
	record := next.Record()
	engine.persist.enqueue("timer", func(ctx context.Context) error {
		return engine.store.WriteTimer(ctx, record)
	})
}

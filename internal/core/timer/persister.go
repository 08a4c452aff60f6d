package timer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const persistTimeout = 5 * time.Second

type persistJob struct {
	name  string
	write func(ctx context.Context) error
}

// persister runs store writes in publish order on a single goroutine.
// The queue is unbounded so a slow store never blocks a command, and every
// publish keeps its own write.
type persister struct {
	logger  zerolog.Logger
	mu      sync.Mutex
	queue   []persistJob
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	started sync.Once
}

func newPersister(logger zerolog.Logger) *persister {
	return &persister{
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (persist *persister) enqueue(name string, write func(ctx context.Context) error) {
	persist.started.Do(func() {
		go persist.run()
	})

	persist.mu.Lock()
	if persist.closed {
		persist.mu.Unlock()
		return
	}
	persist.queue = append(persist.queue, persistJob{name: name, write: write})
	persist.mu.Unlock()

	select {
	case persist.wake <- struct{}{}:
	default:
	}
}

// close stops accepting jobs and waits until queued writes have been attempted.
func (persist *persister) close() {
	persist.started.Do(func() {
		go persist.run()
	})

	persist.mu.Lock()
	persist.closed = true
	persist.mu.Unlock()

	select {
	case persist.wake <- struct{}{}:
	default:
	}
	<-persist.done
}

func (persist *persister) run() {
	defer close(persist.done)
	for {
		persist.mu.Lock()
		if len(persist.queue) == 0 {
			closed := persist.closed
			persist.mu.Unlock()
			if closed {
				return
			}
			<-persist.wake
			continue
		}
		job := persist.queue[0]
		persist.queue[0] = persistJob{}
		persist.queue = persist.queue[1:]
		persist.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := job.write(ctx)
		cancel()
		if err != nil {
			persist.logger.Warn().Err(err).Str("record", job.name).Msg("persist failed")
		}
	}
}

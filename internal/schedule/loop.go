package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultQueueSize is the default capacity of the loop queue.
const DefaultQueueSize = 256

// Loop executes posted work on a single goroutine.
type Loop struct {
	queue   chan func()
	closeCh chan struct{}

	closeOnce sync.Once
	closed    atomic.Bool
	running   atomic.Bool

	processed atomic.Uint64
	dropped   atomic.Uint64
}

// LoopOption configures a Loop.
type LoopOption func(*loopConfig)

type loopConfig struct {
	queueSize int
}

// WithQueueSize sets the queue capacity.
func WithQueueSize(n int) LoopOption {
	return func(c *loopConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// NewLoop creates a loop. Call Run to start processing.
func NewLoop(opts ...LoopOption) *Loop {
	cfg := loopConfig{queueSize: DefaultQueueSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loop{
		queue:   make(chan func(), cfg.queueSize),
		closeCh: make(chan struct{}),
	}
}

// Post enqueues fn. It never blocks; a full queue returns ErrQueueFull.
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if l.closed.Load() {
		return ErrLoopClosed
	}
	select {
	case l.queue <- fn:
		return nil
	default:
		l.dropped.Add(1)
		return ErrQueueFull
	}
}

// Run processes posted work until ctx is done or Close is called.
// It returns nil after Close and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closeCh:
			return nil
		case fn := <-l.queue:
			fn()
			l.processed.Add(1)
		}
	}
}

// Drain runs every queued item on the calling goroutine and returns how
// many ran. It is meant for hosts that pump the loop themselves.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			l.processed.Add(1)
			n++
		default:
			return n
		}
	}
}

// Close stops Run and rejects further work. Pending work is discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.closeCh)
	})
}

// Done is closed when the loop is closed.
func (l *Loop) Done() <-chan struct{} {
	return l.closeCh
}

// Stats reports processed and dropped counts.
func (l *Loop) Stats() (processed, dropped uint64) {
	return l.processed.Load(), l.dropped.Load()
}

// AfterFunc schedules fn to run on the loop once after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.timer = time.AfterFunc(d, func() {
		_ = l.Post(func() {
			// Re-checked on the loop goroutine: a Stop that ran before this
			// point cancels the callback even though the timer already fired.
			if lt.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return lt
}

// Every schedules fn to run on the loop every d until stopped.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	lt := &loopTimer{stopCh: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-lt.stopCh:
				return
			case <-l.closeCh:
				return
			case <-ticker.C:
				// A full queue drops the tick; the next one follows.
				_ = l.Post(func() {
					if lt.stopped.Load() {
						return
					}
					fn()
				})
			}
		}
	}()
	return lt
}

type loopTimer struct {
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.stopCh != nil {
		t.stopOnce.Do(func() { close(t.stopCh) })
	}
	return !t.stopped.Swap(true)
}

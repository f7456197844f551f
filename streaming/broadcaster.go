package streaming

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridlink/microgrid-client/internal/monitoring"
	"github.com/gridlink/microgrid-client/retry"
)

var (
	// ErrSubscriptionClosed is returned by Recv after a subscription has
	// been closed by the caller.
	ErrSubscriptionClosed = errors.New("streaming: subscription closed")

	// ErrBroadcasterClosed is returned when subscribing to a broadcaster
	// that has already been torn down. The Registry handles this
	// internally by creating a fresh instance.
	ErrBroadcasterClosed = errors.New("streaming: broadcaster closed")

	errMissingKey      = errors.New("streaming: stream key must not be empty")
	errMissingOpener   = errors.New("streaming: opener must not be nil")
	errMissingStrategy = errors.New("streaming: retry strategy must not be nil")
)

// TerminalError reports that the retry strategy gave up on a stream. It is
// delivered once through every subscription of the failed broadcaster and to
// any later subscribe against the same instance.
type TerminalError struct {
	Key      string
	Attempts int
	Err      error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("streaming: stream %q abandoned after %d failed attempts: %v", e.Key, e.Attempts, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// Broadcaster owns exactly one logical upstream stream and fans every
// received item out to all registered subscriptions. It reconnects on
// failure according to its retry strategy and tears the upstream call down
// as soon as the last subscription closes. A torn-down broadcaster is never
// reused; subscribing to the same key again creates a fresh instance.
type Broadcaster[T any] struct {
	key      string
	open     Opener[T]
	strategy retry.Strategy
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	bufSize  int

	mu      sync.Mutex
	subs    map[uuid.UUID]*Subscription[T]
	termErr error
	closed  bool
	started bool
	cancel  context.CancelFunc
	onEmpty func()

	// done is closed when the pump goroutine has exited (or, if the pump
	// never started, when the broadcaster is torn down).
	done chan struct{}
}

// NewBroadcaster creates a standalone broadcaster for one stream key. The
// retry strategy is mandatory; there is no default to fall back to. Most
// callers should go through a Registry instead, which manages broadcaster
// lifecycles per key.
func NewBroadcaster[T any](key string, open Opener[T], strategy retry.Strategy, opts ...Option) (*Broadcaster[T], error) {
	if key == "" {
		return nil, errMissingKey
	}
	if open == nil {
		return nil, errMissingOpener
	}
	if strategy == nil {
		return nil, errMissingStrategy
	}
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return newBroadcaster(key, open, strategy, s), nil
}

func newBroadcaster[T any](key string, open Opener[T], strategy retry.Strategy, s settings) *Broadcaster[T] {
	return &Broadcaster[T]{
		key:      key,
		open:     open,
		strategy: strategy,
		logger:   s.logger.With(zap.String("stream", key)),
		metrics:  s.metrics,
		bufSize:  s.bufSize,
		subs:     make(map[uuid.UUID]*Subscription[T]),
		done:     make(chan struct{}),
	}
}

// Key returns the stream key this broadcaster serves.
func (b *Broadcaster[T]) Key() string { return b.key }

// SubscriberCount returns the number of currently registered subscriptions.
func (b *Broadcaster[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Done is closed once the pump goroutine has exited and the upstream call
// has been released.
func (b *Broadcaster[T]) Done() <-chan struct{} { return b.done }

// Subscribe registers a new subscription. The pump starts with the first
// subscription, so a broadcaster with no subscribers generates no upstream
// traffic. If the stream already failed terminally, the returned
// subscription yields the terminal error immediately.
func (b *Broadcaster[T]) Subscribe() (*Subscription[T], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBroadcasterClosed
	}

	sub := &Subscription[T]{
		id: uuid.New(),
		ch: make(chan T, b.bufSize),
		b:  b,
	}

	if b.termErr != nil {
		sub.err = b.termErr
		close(sub.ch)
		sub.chClosed = true
		return sub, nil
	}

	b.subs[sub.id] = sub
	b.metrics.SubscriptionAdded(b.key)

	if !b.started {
		b.started = true
		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		b.metrics.BroadcasterStarted()
		go b.run(ctx)
	}
	return sub, nil
}

// Close force-closes the broadcaster: every open subscription observes
// ErrBroadcasterClosed and the pump is cancelled. Used by Registry.Close;
// the normal teardown path is the last subscription closing.
func (b *Broadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		<-b.done
		return nil
	}
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.setErr(ErrBroadcasterClosed)
		if !sub.chClosed {
			close(sub.ch)
			sub.chClosed = true
		}
		b.metrics.SubscriptionRemoved(b.key)
	}
	b.teardownLocked()
	onEmpty := b.onEmpty
	b.mu.Unlock()

	if onEmpty != nil {
		onEmpty()
	}
	<-b.done
	return nil
}

func (b *Broadcaster[T]) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// teardownLocked marks the broadcaster permanently closed and stops the
// pump. Callers must hold b.mu.
func (b *Broadcaster[T]) teardownLocked() {
	b.closed = true
	if b.started {
		b.cancel()
	} else {
		close(b.done)
	}
}

// unsubscribe removes one subscription; when the set empties, the
// broadcaster tears down in the same state transition and reports itself to
// the registry for eviction.
func (b *Broadcaster[T]) unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subs, id)
	if !sub.chClosed {
		close(sub.ch)
		sub.chClosed = true
	}
	b.metrics.SubscriptionRemoved(b.key)

	var onEmpty func()
	if len(b.subs) == 0 && !b.closed {
		b.teardownLocked()
		onEmpty = b.onEmpty
	}
	b.mu.Unlock()

	if onEmpty != nil {
		onEmpty()
	}
}

// run is the pump goroutine: open the upstream stream, fan items out,
// reconnect per strategy on failure, exit on cancellation or terminal
// failure.
func (b *Broadcaster[T]) run(ctx context.Context) {
	defer close(b.done)
	defer b.metrics.BroadcasterStopped()

	var state retry.State
	for {
		stream, err := b.open(ctx)
		if err == nil {
			err = b.consume(ctx, stream, &state)
		}
		if ctx.Err() != nil {
			return
		}

		state.Attempt++
		if state.FirstFailure.IsZero() {
			state.FirstFailure = time.Now()
		}

		delay, ok := b.strategy.NextDelay(state)
		if !ok {
			b.fail(&TerminalError{Key: b.key, Attempts: state.Attempt, Err: err})
			return
		}

		b.logger.Warn("stream interrupted, reconnecting",
			zap.Int("attempt", state.Attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		b.metrics.Reconnect(b.key)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// consume drains one established stream. Receiving any item resets the
// outage state, so the strategy is consulted fresh for every new outage.
func (b *Broadcaster[T]) consume(ctx context.Context, stream Stream[T], state *retry.State) error {
	defer stream.Close()
	for {
		item, err := stream.Recv()
		if err != nil {
			return err
		}
		*state = retry.State{}
		b.deliver(item)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// deliver hands one item to every subscription in upstream order. Delivery
// never blocks: a subscription whose buffer is full loses its own oldest
// buffered item, and only that subscription misses it.
func (b *Broadcaster[T]) deliver(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		for {
			select {
			case sub.ch <- item:
				b.metrics.Delivered(b.key)
			default:
				select {
				case <-sub.ch:
					b.metrics.Dropped(b.key)
				default:
				}
				continue
			}
			break
		}
	}
}

// fail records the terminal error and closes every delivery channel. The
// subscriptions stay registered until their owners close them, so the
// registry entry survives until the last handle goes away.
func (b *Broadcaster[T]) fail(terr *TerminalError) {
	b.mu.Lock()
	b.termErr = terr
	for _, sub := range b.subs {
		sub.setErr(terr)
		if !sub.chClosed {
			close(sub.ch)
			sub.chClosed = true
		}
	}
	b.mu.Unlock()

	b.metrics.TerminalFailure(b.key)
	b.logger.Error("stream abandoned, retry strategy gave up",
		zap.Int("attempts", terr.Attempts),
		zap.Error(terr.Err))
}

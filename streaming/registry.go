package streaming

import (
	"errors"
	"sync"

	"github.com/gridlink/microgrid-client/retry"
)

// ErrRegistryClosed is returned by Subscribe after the registry has been
// closed.
var ErrRegistryClosed = errors.New("streaming: registry closed")

// Registry maps stream keys to live broadcasters. A broadcaster is created
// on the first subscribe for a key and evicted in the same state transition
// that empties its subscriber set, so an entry never outlives its last
// subscription and a later subscribe for the same key starts from scratch.
type Registry[T any] struct {
	strategy retry.Strategy
	settings settings

	mu      sync.Mutex
	brokers map[string]*Broadcaster[T]
	closed  bool
}

// NewRegistry creates a registry. The retry strategy is mandatory and is
// bound to every broadcaster the registry creates.
func NewRegistry[T any](strategy retry.Strategy, opts ...Option) (*Registry[T], error) {
	if strategy == nil {
		return nil, errMissingStrategy
	}
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Registry[T]{
		strategy: strategy,
		settings: s,
		brokers:  make(map[string]*Broadcaster[T]),
	}, nil
}

// Subscribe registers a subscription for key, creating a broadcaster (and
// its pump) if none is live. Structural errors (empty key, nil opener) are
// reported synchronously and create nothing.
func (r *Registry[T]) Subscribe(key string, open Opener[T]) (*Subscription[T], error) {
	if key == "" {
		return nil, errMissingKey
	}
	if open == nil {
		return nil, errMissingOpener
	}

	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return nil, ErrRegistryClosed
		}
		b := r.brokers[key]
		if b == nil || b.isClosed() {
			nb := newBroadcaster(key, open, r.strategy, r.settings)
			nb.onEmpty = func() { r.evict(key, nb) }
			r.brokers[key] = nb
			b = nb
		}
		r.mu.Unlock()

		sub, err := b.Subscribe()
		if errors.Is(err, ErrBroadcasterClosed) {
			// Raced the teardown of the last subscription; the next pass
			// creates a fresh instance.
			continue
		}
		return sub, err
	}
}

// Active returns the number of live broadcasters.
func (r *Registry[T]) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.brokers)
}

// Close force-closes every broadcaster and rejects further subscribes. It
// returns once all pump goroutines have exited.
func (r *Registry[T]) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	brokers := make([]*Broadcaster[T], 0, len(r.brokers))
	for _, b := range r.brokers {
		brokers = append(brokers, b)
	}
	r.brokers = make(map[string]*Broadcaster[T])
	r.mu.Unlock()

	for _, b := range brokers {
		_ = b.Close()
	}
	return nil
}

func (r *Registry[T]) evict(key string, b *Broadcaster[T]) {
	r.mu.Lock()
	if r.brokers[key] == b {
		delete(r.brokers, key)
	}
	r.mu.Unlock()
}

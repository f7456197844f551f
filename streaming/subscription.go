package streaming

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Subscription is one registered consumer of a broadcaster. Items arrive on
// C in upstream order; when C closes, Err explains why (nil for a voluntary
// Close, a *TerminalError when the retry strategy gave up,
// ErrBroadcasterClosed on forced shutdown).
type Subscription[T any] struct {
	id uuid.UUID
	ch chan T
	b  *Broadcaster[T]

	// chClosed marks that the broadcaster side closed ch. Guarded by b.mu.
	chClosed bool

	mu         sync.Mutex
	err        error
	userClosed bool
}

// C returns the delivery channel. It is closed when the subscription ends;
// buffered items remain readable after that.
func (s *Subscription[T]) C() <-chan T { return s.ch }

// Err returns the reason the subscription ended, or nil. Only meaningful
// once C has been closed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// Recv returns the next item, blocking until one is available, the
// subscription ends, or ctx is done. After the subscription ends it returns
// the terminal error if there is one, ErrSubscriptionClosed otherwise.
func (s *Subscription[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	select {
	case item, ok := <-s.ch:
		if !ok {
			if err := s.Err(); err != nil {
				return zero, err
			}
			return zero, ErrSubscriptionClosed
		}
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close unregisters the subscription. It is idempotent and safe to call
// concurrently with delivery. Closing the last subscription of a
// broadcaster tears the upstream stream down immediately.
func (s *Subscription[T]) Close() error {
	s.mu.Lock()
	if s.userClosed {
		s.mu.Unlock()
		return nil
	}
	s.userClosed = true
	s.mu.Unlock()

	s.b.unsubscribe(s.id)
	return nil
}

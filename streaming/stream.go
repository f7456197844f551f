package streaming

import "context"

// Stream is one established upstream server stream. It matches the shape of
// a generated gRPC server-streaming client: Recv blocks until the next item,
// the end of the stream, or an error. io.EOF from Recv means the server
// closed the stream cleanly; the broadcaster treats it like any other
// interruption and reconnects.
type Stream[T any] interface {
	Recv() (T, error)
	Close() error
}

// Opener opens a single upstream stream attempt. It must not retry: retrying
// is the broadcaster's job. The returned stream must be bound to ctx so that
// cancelling ctx unblocks Recv and releases the underlying call promptly
// (gRPC streams behave this way when opened with the given context).
type Opener[T any] func(ctx context.Context) (Stream[T], error)

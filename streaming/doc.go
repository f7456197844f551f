// Package streaming multiplexes one fallible upstream server stream per key
// to any number of independently-lifetimed local subscriptions.
//
// A Broadcaster owns a single background pump goroutine that opens the
// upstream stream through an Opener, fans every received item out to all
// registered Subscriptions in arrival order, and reconnects transparently
// on failure according to a retry.Strategy. When the strategy gives up, a
// *TerminalError is delivered once through every subscription. When the
// last subscription closes, the pump is cancelled and the upstream call is
// released in the same state transition; a torn-down broadcaster is never
// reused.
//
// A Registry keys broadcasters by stream key, creating them on first
// subscribe and evicting them exactly when they empty, so subscribing after
// a teardown starts a fresh stream.
//
// Delivery guarantees:
//   - per subscription, items preserve upstream order (gaps only during
//     outages or buffer overflow)
//   - a subscription whose buffer is full loses its own oldest item; other
//     subscriptions and the pump never block on it
//   - transient stream errors are absorbed and retried; subscribers only
//     ever see a single terminal error, and only if the strategy gives up
package streaming

// Package connection parses microgrid server URLs and dials gRPC
// connections with production defaults (keepalive, message size limits,
// TLS or plaintext credentials).
//
// A Descriptor is immutable: it identifies where the service lives, not
// the health of any particular connection. Stream-level retrying is the
// streaming package's job.
package connection

package connection

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// DefaultPort is used when the server URL carries no explicit port.
const DefaultPort = 9090

const maxMessageSize = 10 * 1024 * 1024

// Descriptor identifies a microgrid API endpoint. It is immutable once
// parsed; retrying and reconnecting happen above this layer.
type Descriptor struct {
	Host string
	Port int
	TLS  bool
}

// Parse parses a server URL of the form "grpc://hostname[:port][?ssl=bool]".
// The port defaults to 9090 and ssl to false. Anything else in the URL
// (path, credentials, other query parameters) is rejected.
func Parse(rawURL string) (Descriptor, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Descriptor{}, fmt.Errorf("invalid server URL %q: %w", rawURL, err)
	}
	if u.Scheme != "grpc" {
		return Descriptor{}, fmt.Errorf("invalid server URL %q: scheme must be grpc, got %q", rawURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return Descriptor{}, fmt.Errorf("invalid server URL %q: host is required", rawURL)
	}
	if u.User != nil {
		return Descriptor{}, fmt.Errorf("invalid server URL %q: credentials are not supported", rawURL)
	}
	if u.Path != "" && u.Path != "/" {
		return Descriptor{}, fmt.Errorf("invalid server URL %q: path is not supported", rawURL)
	}
	if u.Fragment != "" {
		return Descriptor{}, fmt.Errorf("invalid server URL %q: fragment is not supported", rawURL)
	}

	port := DefaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 0 || port > 65535 {
			return Descriptor{}, fmt.Errorf("invalid server URL %q: port must be in [0, 65535], got %q", rawURL, p)
		}
	}

	useTLS := false
	query := u.Query()
	for name, values := range query {
		if name != "ssl" {
			return Descriptor{}, fmt.Errorf("invalid server URL %q: unexpected query parameter %q", rawURL, name)
		}
		if len(values) != 1 {
			return Descriptor{}, fmt.Errorf("invalid server URL %q: ssl given %d times", rawURL, len(values))
		}
		useTLS, err = strconv.ParseBool(values[0])
		if err != nil {
			return Descriptor{}, fmt.Errorf("invalid server URL %q: ssl must be a boolean, got %q", rawURL, values[0])
		}
	}

	return Descriptor{Host: u.Hostname(), Port: port, TLS: useTLS}, nil
}

// Target returns the host:port dial target.
func (d Descriptor) Target() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// String renders the descriptor back into URL form.
func (d Descriptor) String() string {
	return fmt.Sprintf("grpc://%s?ssl=%t", d.Target(), d.TLS)
}

// Dial opens a client connection to the endpoint with production defaults:
// keepalive pings on active streams to detect broken connections, 10MB
// message size limits, and TLS or plaintext credentials per the descriptor.
// Extra dial options are appended after the defaults so callers can
// override them.
func (d Descriptor) Dial(extra ...grpc.DialOption) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if d.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		// Reduced ping frequency to avoid "too_many_pings" from servers
		// with strict keepalive enforcement.
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                60 * time.Second,
			Timeout:             20 * time.Second,
			PermitWithoutStream: false,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize),
		),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(d.Target(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", d.Target(), err)
	}
	return conn, nil
}

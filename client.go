package microgrid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gridlink/microgrid-client/component"
	"github.com/gridlink/microgrid-client/connection"
	"github.com/gridlink/microgrid-client/metrics"
	"github.com/gridlink/microgrid-client/retry"
	"github.com/gridlink/microgrid-client/streaming"
)

// DefaultCallTimeout bounds every unary call made by the client unless
// WithCallTimeout overrides it.
const DefaultCallTimeout = 60 * time.Second

// ComponentFilter restricts ListComponents. Both lists are OR within
// themselves and AND with each other; an empty list means "no filter".
type ComponentFilter struct {
	IDs        []component.ID
	Categories []component.Category
}

// ConnectionFilter restricts ListConnections. Semantics as ComponentFilter.
type ConnectionFilter struct {
	Sources      []component.ID
	Destinations []component.ID
}

// Service is the RPC stub boundary: the subset of the generated microgrid
// API client the typed client drives. The adapter wrapping the generated
// stub implements it; this package never touches wire messages directly.
//
// StreamComponentDataSamples must open a single streaming attempt bound to
// ctx, without retrying; reconnection is the client's job.
type Service interface {
	GetMicrogridInfo(ctx context.Context) (*MicrogridInfo, error)
	ListComponents(ctx context.Context, filter ComponentFilter) ([]component.Component, error)
	ListConnections(ctx context.Context, filter ConnectionFilter) ([]component.Connection, error)
	SetComponentPowerActive(ctx context.Context, id component.ID, powerW float64) error
	SetComponentPowerReactive(ctx context.Context, id component.ID, powerVAr float64) error
	AddComponentBounds(ctx context.Context, id component.ID, metric metrics.Metric, bounds []metrics.Bounds) error
	StreamComponentDataSamples(ctx context.Context, id component.ID) (streaming.Stream[component.DataSamples], error)
}

type clientSettings struct {
	logger     *zap.Logger
	timeout    time.Duration
	registerer prometheus.Registerer
	bufSize    int
}

// ClientOption configures a Client.
type ClientOption func(*clientSettings)

// WithLogger sets the logger used by the client and its stream pumps.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(s *clientSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCallTimeout bounds every unary call.
func WithCallTimeout(d time.Duration) ClientOption {
	return func(s *clientSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRegisterer enables Prometheus instrumentation of the streaming core.
func WithRegisterer(reg prometheus.Registerer) ClientOption {
	return func(s *clientSettings) { s.registerer = reg }
}

// WithStreamBuffer sets the per-subscription delivery buffer capacity.
func WithStreamBuffer(n int) ClientOption {
	return func(s *clientSettings) { s.bufSize = n }
}

// Client is the typed microgrid API client. Unary operations are single
// attempts with errors surfaced synchronously as *APIError; streaming
// operations go through a broadcaster registry that keeps one upstream
// stream per component alive across failures using the given retry
// strategy.
type Client struct {
	desc    connection.Descriptor
	server  string
	svc     Service
	logger  *zap.Logger
	timeout time.Duration
	samples *streaming.Registry[component.DataSamples]
}

// NewClient creates a client for the service at serverURL
// ("grpc://host[:port][?ssl=bool]"), driven through the given stub adapter.
// The retry strategy is mandatory and governs every stream the client
// opens; there is no default to fall back to.
func NewClient(serverURL string, svc Service, strategy retry.Strategy, opts ...ClientOption) (*Client, error) {
	desc, err := connection.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, errors.New("microgrid: service stub must not be nil")
	}
	if strategy == nil {
		return nil, errors.New("microgrid: retry strategy must not be nil")
	}

	s := clientSettings{
		logger:  zap.NewNop(),
		timeout: DefaultCallTimeout,
		bufSize: streaming.DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(&s)
	}

	streamOpts := []streaming.Option{
		streaming.WithLogger(s.logger),
		streaming.WithBufferSize(s.bufSize),
	}
	if s.registerer != nil {
		streamOpts = append(streamOpts, streaming.WithRegisterer(s.registerer))
	}
	samples, err := streaming.NewRegistry[component.DataSamples](strategy, streamOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		desc:    desc,
		server:  desc.String(),
		svc:     svc,
		logger:  s.logger,
		timeout: s.timeout,
		samples: samples,
	}, nil
}

// Server returns the normalized URL of the endpoint this client talks to.
func (c *Client) Server() string { return c.server }

// Descriptor returns the parsed endpoint descriptor, e.g. for dialing.
func (c *Client) Descriptor() connection.Descriptor { return c.desc }

// Close tears down every open component data stream. Unary calls remain
// possible as long as the underlying stub is alive; the stub's connection
// belongs to whoever dialed it.
func (c *Client) Close() error {
	return c.samples.Close()
}

// MicrogridInfo fetches the description of the microgrid itself: identity,
// location, delivery area.
func (c *Client) MicrogridInfo(ctx context.Context) (*MicrogridInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	info, err := c.svc.GetMicrogridInfo(ctx)
	if err != nil {
		return nil, wrapRPCError("GetMicrogridInfo", c.server, err)
	}
	return info, nil
}

// Components fetches the electrical components of the microgrid, optionally
// filtered.
func (c *Client) Components(ctx context.Context, filter ComponentFilter) ([]component.Component, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	comps, err := c.svc.ListComponents(ctx, filter)
	if err != nil {
		return nil, wrapRPCError("ListComponents", c.server, err)
	}
	return comps, nil
}

// Connections fetches the electrical connections between components,
// optionally filtered by endpoint.
func (c *Client) Connections(ctx context.Context, filter ConnectionFilter) ([]component.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conns, err := c.svc.ListConnections(ctx, filter)
	if err != nil {
		return nil, wrapRPCError("ListConnections", c.server, err)
	}
	return conns, nil
}

// SetPowerActive sets the active power target of a component in watts.
// Negative values charge, positive values discharge.
func (c *Client) SetPowerActive(ctx context.Context, id component.ID, powerW float64) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.svc.SetComponentPowerActive(ctx, id, powerW); err != nil {
		return wrapRPCError("SetComponentPowerActive", c.server, err)
	}
	return nil
}

// SetPowerReactive sets the reactive power target of a component in VAr.
func (c *Client) SetPowerReactive(ctx context.Context, id component.ID, powerVAr float64) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.svc.SetComponentPowerReactive(ctx, id, powerVAr); err != nil {
		return wrapRPCError("SetComponentPowerReactive", c.server, err)
	}
	return nil
}

// AddBounds adds inclusion bounds for a metric of a component. Malformed
// bounds are rejected locally before any call is made.
func (c *Client) AddBounds(ctx context.Context, id component.ID, metric metrics.Metric, bounds []metrics.Bounds) error {
	if len(bounds) == 0 {
		return errors.New("microgrid: at least one bounds set is required")
	}
	for _, b := range bounds {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("microgrid: invalid bounds for %s of %s: %w", metric, id, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.svc.AddComponentBounds(ctx, id, metric, bounds); err != nil {
		return wrapRPCError("AddComponentBounds", c.server, err)
	}
	return nil
}

// ComponentDataSamples subscribes to the data sample stream of a component.
// All concurrent subscriptions for the same component share one upstream
// stream; the stream is opened with the first subscription and closed with
// the last. Interruptions are retried per the client's strategy without
// surfacing to subscribers unless the strategy gives up.
func (c *Client) ComponentDataSamples(id component.ID) (*streaming.Subscription[component.DataSamples], error) {
	key := "component-data-samples/" + id.String()
	return c.samples.Subscribe(key, func(ctx context.Context) (streaming.Stream[component.DataSamples], error) {
		return c.svc.StreamComponentDataSamples(ctx, id)
	})
}

// ActiveStreams returns the number of live upstream component streams.
func (c *Client) ActiveStreams() int { return c.samples.Active() }

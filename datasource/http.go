// Package datasource implements the external data source consumed by the
// offchain worker: a single HTTP(S) endpoint fetched with a bounded deadline
// once per pipeline run.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/module"
)

const (
	// DefaultFetchTimeout bounds one fetch, transient retries included. It
	// must stay well below the host chain's block production budget.
	DefaultFetchTimeout = 2 * time.Second

	// DefaultMaxResponseBytes caps how much of the response body is read.
	DefaultMaxResponseBytes = 1 << 20 // 1 MiB

	// defaultRetryMax is the number of transient-error retries performed by
	// the transport inside the fetch deadline.
	defaultRetryMax = 2
)

var (
	// ErrUnexpectedStatus indicates the endpoint answered with a
	// non-success status code.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidPayload indicates the response body is not usable as a
	// datum (truncated read or non-UTF-8 content).
	ErrInvalidPayload = errors.New("invalid response payload")
)

// Config configures an HTTPSource.
type Config struct {
	// URL of the endpoint serving the datum.
	URL string

	// Timeout bounds one Fetch call end to end.
	Timeout time.Duration

	// MaxResponseBytes caps the accepted response body size.
	MaxResponseBytes int64
}

// DefaultConfig returns a config with production defaults; the URL must
// still be set by the caller.
func DefaultConfig() Config {
	return Config{
		Timeout:          DefaultFetchTimeout,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// HTTPSource fetches a datum from a configured HTTP endpoint. All failure
// modes (network error, timeout, bad status, malformed payload) surface as a
// plain error so the calling pipeline aborts uniformly.
type HTTPSource struct {
	log      zerolog.Logger
	client   *retryablehttp.Client
	clock    clockwork.Clock
	url      string
	timeout  time.Duration
	maxBytes int64
}

var _ module.DatumSource = (*HTTPSource)(nil)

// Option customizes an HTTPSource.
type Option func(*HTTPSource)

// WithClock overrides the clock used for fetch timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *HTTPSource) {
		s.clock = clock
	}
}

// NewHTTPSource returns a datum source fetching from cfg.URL.
func NewHTTPSource(log zerolog.Logger, cfg Config, opts ...Option) (*HTTPSource, error) {
	if cfg.URL == "" {
		return nil, errors.New("datasource URL must be set")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("fetch timeout must be positive")
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = DefaultMaxResponseBytes
	}

	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = 250 * time.Millisecond
	client.Logger = nil

	s := &HTTPSource{
		log:      log.With().Str("component", "datasource").Logger(),
		client:   client,
		clock:    clockwork.NewRealClock(),
		url:      cfg.URL,
		timeout:  cfg.Timeout,
		maxBytes: cfg.MaxResponseBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fetch performs one bounded fetch against the configured endpoint and
// parses the response into a datum.
func (s *HTTPSource) Fetch(ctx context.Context) (*chain.Datum, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s failed: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch from %s: status %d: %w", s.url, resp.StatusCode, ErrUnexpectedStatus)
	}

	// read one byte past the cap to detect oversized bodies
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes: %w", s.maxBytes, ErrInvalidPayload)
	}
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("response body is not valid UTF-8: %w", ErrInvalidPayload)
	}

	s.log.Debug().Int("size", len(body)).Msg("fetched datum")

	return &chain.Datum{
		Payload:   body,
		FetchedAt: s.clock.Now(),
	}, nil
}

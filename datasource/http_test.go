package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/oraclenet/offchain-worker/utils/unittest"
)

func newSource(t *testing.T, url string, opts ...Option) *HTTPSource {
	cfg := DefaultConfig()
	cfg.URL = url
	source, err := NewHTTPSource(unittest.Logger(), cfg, opts...)
	require.NoError(t, err)
	return source
}

func TestFetchSuccess(t *testing.T) {
	body := `{"Symbol":"BTC","Name":"Bitcoin","Price":42000.42}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	clock := clockwork.NewFakeClock()
	source := newSource(t, server.URL, WithClock(clock))

	datum, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(body), datum.Payload)
	assert.Equal(t, clock.Now(), datum.FetchedAt)
}

func TestFetchRetriesTransientErrors(t *testing.T) {
	attempts := atomic.NewInt32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Inc() < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	source := newSource(t, server.URL)

	datum, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("recovered"), datum.Payload)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	source := newSource(t, server.URL)

	_, err := source.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFetchInvalidUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer server.Close()

	source := newSource(t, server.URL)

	_, err := source.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestFetchOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.MaxResponseBytes = 8
	source, err := NewHTTPSource(unittest.Logger(), cfg)
	require.NoError(t, err)

	_, err = source.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

// TestFetchDeadline verifies a slow endpoint cannot hold a pipeline beyond
// the configured fetch timeout.
func TestFetchDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.Timeout = 100 * time.Millisecond
	source, err := NewHTTPSource(unittest.Logger(), cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = source.Fetch(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer server.Close()

	source := newSource(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := source.Fetch(ctx)
	assert.Error(t, err)
}

func TestNewHTTPSourceValidation(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewHTTPSource(unittest.Logger(), cfg)
	assert.Error(t, err, "missing URL must be rejected")

	cfg.URL = "http://localhost:1"
	cfg.Timeout = 0
	_, err = NewHTTPSource(unittest.Logger(), cfg)
	assert.Error(t, err, "zero timeout must be rejected")
}

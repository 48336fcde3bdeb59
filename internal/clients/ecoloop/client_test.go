package ecoloop

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *Session, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := NewSession("test-token")
	client, err := NewClient(srv.URL, session, srv.Client())
	require.NoError(t, err)
	return client, session, srv
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"code":%d,"message":%q}`, status, message)))
}

func TestClient_MapsStatusesOntoTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    error
	}{
		{"conflict", http.StatusBadRequest, "already claimed", ErrConflict},
		{"forbidden", http.StatusForbidden, "admin role required", ErrForbidden},
		{"not found", http.StatusNotFound, "object not found", ErrNotFound},
		{"server fault", http.StatusInternalServerError, "internal error", ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeStatus(w, tt.status, tt.message)
			}))

			err := client.Claim(context.Background(), "ord-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_UnauthorizedInvalidatesSession(t *testing.T) {
	var requests atomic.Int64
	client, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		writeStatus(w, http.StatusUnauthorized, "invalid or expired token")
	}))

	err := client.Claim(context.Background(), "ord-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.Valid())

	// Subsequent calls fail fast without touching the network.
	err = client.Claim(context.Background(), "ord-1")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int64(1), requests.Load())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var header atomic.Value
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.Orders(context.Background(), ListFilter{View: "open"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", header.Load())
}

func TestClient_TimeoutIsTransportTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, NewSession("t"), &http.Client{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Orders(context.Background(), ListFilter{})
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, transportErr.Timeout)
}

func TestClient_ConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(url, NewSession("t"), &http.Client{Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Orders(context.Background(), ListFilter{})
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.False(t, transportErr.Timeout)
}

func TestClient_ConfigFetchNeedsNoSession(t *testing.T) {
	var sawAuth atomic.Bool
	client, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			sawAuth.Store(true)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"1.0.2","app_name":"EcoLoop","copyright":"Copyright","links":[],"release_notes":"ignored"}`))
	}))
	session.Invalidate()

	about, err := client.AboutPageConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EcoLoop", about.AppName)
	assert.Equal(t, "1.0.2", about.Version)
	assert.False(t, sawAuth.Load())
}

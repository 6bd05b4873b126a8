package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/tokenstore"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string, onUnauthorized func()) (*Client, *tokenstore.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := tokenstore.NewMemoryStore(token)
	c := New(Config{
		BaseURL:        srv.URL + "/api/v1",
		Tokens:         store,
		OnUnauthorized: onUnauthorized,
	})
	return c, store
}

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
		wantSet    bool
	}{
		{name: "no token", token: "", wantSet: false},
		{name: "with token", token: "abc123", wantHeader: "Bearer abc123", wantSet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				_, _ = w.Write([]byte(`[]`))
			}, tt.token, nil)

			var out []map[string]any
			require.NoError(t, c.Get(context.Background(), "/procesos", &out))

			_, present := got["Authorization"]
			assert.Equal(t, tt.wantSet, present)
			if tt.wantSet {
				assert.Equal(t, tt.wantHeader, got.Get("Authorization"))
			}
			assert.Equal(t, "application/json", got.Get("Content-Type"))
			assert.NotEmpty(t, got.Get("X-Request-ID"))
		})
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@estudio.pe", body["email"])
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	}, "", nil)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.Post(context.Background(), "/auth/login", map[string]string{"email": "ana@estudio.pe"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "tok", out.AccessToken)
}

func TestUnauthorizedClearsTokenAndCallsBack(t *testing.T) {
	var calls int32
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}, "expired", func() { atomic.AddInt32(&calls, 1) })

	err := c.Get(context.Background(), "/auth/me", nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Not authenticated", err.Error())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	token, _ := store.Get()
	assert.Empty(t, token)
}

func TestUnauthorizedConcurrentRequests(t *testing.T) {
	const n = 25
	var calls int32
	release := make(chan struct{})
	var arrived sync.WaitGroup
	arrived.Add(n)

	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}, "expired", func() { atomic.AddInt32(&calls, 1) })

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Get(context.Background(), "/procesos", nil)
		}()
	}
	arrived.Wait()
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	}
	assert.Equal(t, int32(n), atomic.LoadInt32(&calls), "one callback per request")
	token, _ := store.Get()
	assert.Empty(t, token)
}

func TestHTTPErrorCarriesStatusAndBody(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"expediente duplicado"}`))
	}, "tok", func() { t.Fatal("callback must not run for non-401 errors") })

	err := c.Post(context.Background(), "/procesos", map[string]string{"expediente": "X"}, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 422, httpErr.StatusCode)
	assert.Equal(t, `{"detail":"expediente duplicado"}`, httpErr.Body)
	assert.Equal(t, `HTTP error! status: 422, message: {"detail":"expediente duplicado"}`, err.Error())
	assert.Equal(t, 422, StatusCode(err))
	assert.False(t, IsCancelled(err))

	token, _ := store.Get()
	assert.Equal(t, "tok", token, "token survives non-401 errors")
}

func TestTimeoutIsCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	err := c.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	assert.Equal(t, "La solicitud fue cancelada. Intenta nuevamente.", err.Error())

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestCallerCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Get(ctx, "/procesos", nil)
	assert.True(t, IsCancelled(err))
}

func TestEmptyBodySkipsDecoding(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "", nil)

	var out map[string]any
	require.NoError(t, c.Delete(context.Background(), "/resoluciones/3", &out))
	assert.Nil(t, out)
}

func TestInvalidJSONResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}, "", nil)

	var out map[string]any
	err := c.Get(context.Background(), "/procesos/1", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestHealthUsesRootPath(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = io.WriteString(w, `{"status":"healthy","service":"sgpj"}`)
	}, "", nil)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
}

func TestTokenManagement(t *testing.T) {
	c := New(Config{BaseURL: "http://localhost:8000/api/v1"})
	assert.False(t, c.IsAuthenticated())
	require.NoError(t, c.SetToken("tok"))
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "tok", c.Token())
	require.NoError(t, c.ClearToken())
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

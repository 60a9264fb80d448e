package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwx/pocketwx/internal/domain"
)

func TestGetJSON(t *testing.T) {
	t.Run("decodes a 200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
			w.Write([]byte(`{"value": 42}`))
		}))
		defer srv.Close()

		var out struct {
			Value int `json:"value"`
		}
		c := New("test", 2*time.Second)
		require.NoError(t, c.GetJSON(context.Background(), srv.URL, &out))
		assert.Equal(t, 42, out.Value)
	})

	t.Run("non-2xx maps to network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		var out struct{}
		err := New("test", 2*time.Second).GetJSON(context.Background(), srv.URL, &out)
		assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	})

	t.Run("malformed body maps to network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		var out struct{}
		err := New("test", 2*time.Second).GetJSON(context.Background(), srv.URL, &out)
		assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	})

	t.Run("cancelled context maps to cancelled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		var out struct{}
		err := New("test", 5*time.Second).GetJSON(ctx, srv.URL, &out)
		assert.ErrorIs(t, err, domain.ErrCancelled)
		assert.True(t, domain.IsCancelled(err))
	})

	t.Run("deadline maps to timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		var out struct{}
		err := New("test", 5*time.Second).GetJSON(ctx, srv.URL, &out)
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("open breaker maps to provider unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := New("test", 2*time.Second)
		var out struct{}
		// Default gobreaker trips after more than five consecutive failures.
		for i := 0; i < 6; i++ {
			err := c.GetJSON(context.Background(), srv.URL, &out)
			assert.ErrorIs(t, err, domain.ErrNetworkFailure)
		}
		err := c.GetJSON(context.Background(), srv.URL, &out)
		assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	})
}

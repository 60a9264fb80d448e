package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwx/pocketwx/internal/adapter/httpx"
	"github.com/pocketwx/pocketwx/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(httpx.New("reverse", 2*time.Second), srv.URL, "en", testLogger())
}

func TestReversePlace(t *testing.T) {
	t.Run("city result", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "52.52", q.Get("lat"))
			assert.Equal(t, "13.405", q.Get("lon"))
			assert.Equal(t, "jsonv2", q.Get("format"))
			assert.Equal(t, "10", q.Get("zoom"))
			assert.Equal(t, "1", q.Get("addressdetails"))
			assert.Equal(t, "en", q.Get("accept-language"))
			assert.Contains(t, r.Header.Get("User-Agent"), "pocketwx")
			io.WriteString(w, `{"address":{"city":"Berlin","state":"Berlin","country":"Germany"}}`)
		})

		got, err := c.ReversePlace(context.Background(), 52.52, 13.405)
		require.NoError(t, err)
		assert.Equal(t, "Berlin", got.Name)
		assert.Equal(t, "Berlin", got.Admin1)
		assert.Equal(t, "Germany", got.Country)
		assert.Equal(t, 52.52, got.Latitude)
		assert.Equal(t, 13.405, got.Longitude)
	})

	t.Run("falls through the settlement vocabulary", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"address":{"village":"Oberdorf","county":"Landkreis X","country":"Germany"}}`)
		})

		got, err := c.ReversePlace(context.Background(), 48.1, 11.5)
		require.NoError(t, err)
		assert.Equal(t, "Oberdorf", got.Name)
		assert.Equal(t, "Landkreis X", got.Admin1)
	})

	t.Run("no settlement name is ErrNoResult", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"address":{"country":"Norway"}}`)
		})

		_, err := c.ReversePlace(context.Background(), 71.0, 25.0)
		assert.ErrorIs(t, err, domain.ErrNoResult)
	})

	t.Run("upstream failure surfaces the taxonomy", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		})

		_, err := c.ReversePlace(context.Background(), 52.52, 13.405)
		assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	})
}

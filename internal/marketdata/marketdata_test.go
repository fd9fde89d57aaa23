package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/real-time/AAPL.US", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_token"))
		assert.Equal(t, "json", r.URL.Query().Get("fmt"))
		fmt.Fprint(w, `{"code":"AAPL.US","timestamp":1717400000,"close":185.5}`)
	}))
	defer srv.Close()

	c := &EODHDClient{APIKey: "secret", BaseURL: srv.URL}
	quote, err := c.Latest(context.Background(), "AAPL.US")
	require.NoError(t, err)
	assert.Equal(t, "AAPL.US", quote.Ticker)
	assert.Equal(t, "185.5", quote.Price.String())
	assert.Equal(t, int64(1717400000), quote.Time.Unix())
}

func TestLatest_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &EODHDClient{APIKey: "wrong", BaseURL: srv.URL}
	_, err := c.Latest(context.Background(), "AAPL.US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestLatest_NoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"XXXX.US","timestamp":0,"close":0}`)
	}))
	defer srv.Close()

	c := &EODHDClient{BaseURL: srv.URL}
	_, err := c.Latest(context.Background(), "XXXX.US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price available")
}

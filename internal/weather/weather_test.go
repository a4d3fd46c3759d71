package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "53.35", r.URL.Query().Get("lat"))
		assert.Equal(t, "-6.25", r.URL.Query().Get("lon"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"weather":[{"description":"light rain"}],"main":{"temp":11.5}}`))
	}))
	defer server.Close()

	client := New("test-key", nil)
	client.baseURL = server.URL

	conditions := client.Current(context.Background(), "53.35", "-6.25")
	require.NotEmpty(t, conditions)

	main, ok := conditions["main"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 11.5, main["temp"])
}

func TestCurrent_Non200ReturnsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New("bad-key", nil)
	client.baseURL = server.URL

	conditions := client.Current(context.Background(), "53.35", "-6.25")
	assert.Empty(t, conditions)
}

func TestCurrent_NetworkErrorReturnsEmpty(t *testing.T) {
	t.Parallel()

	client := New("test-key", nil)
	client.baseURL = "http://127.0.0.1:1"

	conditions := client.Current(context.Background(), "53.35", "-6.25")
	assert.Empty(t, conditions)
}

func TestCacheKeyRoundsCoordinates(t *testing.T) {
	t.Parallel()

	// Nearby lookups share an entry.
	assert.Equal(t, "weather:53.35:-6.25", cacheKeyFor("53.351", "-6.249"))
	assert.Equal(t, cacheKeyFor("53.351", "-6.249"), cacheKeyFor("53.349", "-6.251"))

	// Unparsable coordinates fall back to the raw strings.
	assert.Equal(t, "weather:north:west", cacheKeyFor("north", "west"))
}

func TestCurrent_BadBodyReturnsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := New("test-key", nil)
	client.baseURL = server.URL

	conditions := client.Current(context.Background(), "53.35", "-6.25")
	assert.Empty(t, conditions)
}

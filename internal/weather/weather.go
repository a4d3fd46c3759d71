// Package weather looks up current conditions for a coordinate pair via
// OpenWeatherMap. Lookups are best-effort: any failure degrades to an empty
// result instead of surfacing to the caller.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Conditions is the weather service's response, passed through unshaped.
type Conditions map[string]any

type Service interface {
	Current(ctx context.Context, latitude, longitude string) Conditions
}

type Client struct {
	apiKey   string
	baseURL  string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
}

// New builds a client. cache may be nil, in which case every lookup goes to
// the remote service.
func New(apiKey string, cache *redis.Client) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		cacheTTL: 10 * time.Minute,
	}
}

func (c *Client) Current(ctx context.Context, latitude, longitude string) Conditions {
	cacheKey := cacheKeyFor(latitude, longitude)

	if body, ok := c.cacheGet(ctx, cacheKey); ok {
		var conditions Conditions
		if err := json.Unmarshal(body, &conditions); err == nil {
			return conditions
		}
	}

	reqURL := fmt.Sprintf("%s?lat=%s&lon=%s&units=metric&appid=%s",
		c.baseURL,
		url.QueryEscape(latitude),
		url.QueryEscape(longitude),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Conditions{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("weather lookup failed: %v", err)
		return Conditions{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("weather lookup returned status %d", resp.StatusCode)
		return Conditions{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Conditions{}
	}

	var conditions Conditions
	if err := json.Unmarshal(body, &conditions); err != nil {
		return Conditions{}
	}

	c.cacheSet(ctx, cacheKey, body)

	return conditions
}

// cacheKeyFor rounds the coordinates to two decimals (roughly a kilometre)
// so nearby lookups share a cache entry. Unparsable input falls back to the
// raw strings.
func cacheKeyFor(latitude, longitude string) string {
	lat, latErr := strconv.ParseFloat(latitude, 64)
	lon, lonErr := strconv.ParseFloat(longitude, 64)
	if latErr != nil || lonErr != nil {
		return fmt.Sprintf("weather:%s:%s", latitude, longitude)
	}
	return fmt.Sprintf("weather:%.2f:%.2f", lat, lon)
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *Client) cacheSet(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	// Cache misses and write failures are both fine; the next lookup just
	// hits the remote service again.
	if err := c.cache.Set(ctx, key, body, c.cacheTTL).Err(); err != nil {
		log.Printf("weather cache write failed: %v", err)
	}
}

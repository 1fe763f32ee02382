// Package weatherapi fetches live weather conditions for battle init. The
// source is a soft enhancement: on any failure callers fall back to the
// clear-day snapshot instead of failing the battle.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

// Condition is the raw textual condition reported by the source.
type Condition struct {
	Description string
}

type cacheEntry struct {
	cond    Condition
	fetched time.Time
}

// Client calls an OpenWeatherMap-compatible endpoint with a short TTL cache
// so back-to-back battle inits near the same spot don't hammer the source.
type Client struct {
	baseURL string
	apiKey  string

	cacheMu  sync.RWMutex
	cache    map[string]cacheEntry
	cacheTTL time.Duration
}

// NewClient builds a client for the given base URL. apiKey may be empty for
// keyless deployments and test servers.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		cache:    make(map[string]cacheEntry),
		cacheTTL: 5 * time.Minute,
	}
}

type apiResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Condition fetches the current condition for coordinates, retrying twice on
// transient failures before reporting the source unavailable.
func (c *Client) Condition(ctx context.Context, lat, lon float64) (Condition, error) {
	key := fmt.Sprintf("%.2f:%.2f", lat, lon)
	c.cacheMu.RLock()
	if e, ok := c.cache[key]; ok && time.Since(e.fetched) < c.cacheTTL {
		c.cacheMu.RUnlock()
		return e.cond, nil
	}
	c.cacheMu.RUnlock()

	var cond Condition
	backoff := retry.WithMaxRetries(2, retry.NewConstant(300*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		got, err := c.fetch(ctx, lat, lon)
		if err != nil {
			return retry.RetryableError(err)
		}
		cond = got
		return nil
	})
	if err != nil {
		return Condition{}, fmt.Errorf("weather source unavailable: %w", err)
	}

	c.cacheMu.Lock()
	c.cache[key] = cacheEntry{cond: cond, fetched: time.Now()}
	c.cacheMu.Unlock()
	return cond, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (Condition, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	if c.apiKey != "" {
		q.Set("appid", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return Condition{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return Condition{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Condition{}, fmt.Errorf("weather api status %d", resp.StatusCode)
	}
	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Condition{}, err
	}
	if len(body.Weather) == 0 {
		return Condition{}, fmt.Errorf("weather api returned no conditions")
	}
	return Condition{Description: body.Weather[0].Description}, nil
}

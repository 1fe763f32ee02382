package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionFetchesDescription(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"weather":[{"main":"Rain","description":"light rain"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	cond, err := c.Condition(context.Background(), 59.33, 18.07)
	require.NoError(t, err)
	assert.Equal(t, "light rain", cond.Description)
	assert.Equal(t, int32(1), calls.Load())
}

func TestConditionServesFromCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"weather":[{"main":"Snow","description":"snow showers"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	for i := 0; i < 3; i++ {
		cond, err := c.Condition(context.Background(), 10, 20)
		require.NoError(t, err)
		assert.Equal(t, "snow showers", cond.Description)
	}
	assert.Equal(t, int32(1), calls.Load(), "same coordinates hit the cache")

	// Different coordinates miss the cache.
	_, err := c.Condition(context.Background(), 11, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestConditionRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"weather":[{"main":"Clear","description":"clear sky"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	cond, err := c.Condition(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "clear sky", cond.Description)
	assert.Equal(t, int32(3), calls.Load())
}

func TestConditionGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Condition(context.Background(), 3, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather source unavailable")
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestConditionEmptyPayloadIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Condition(context.Background(), 5, 6)
	assert.Error(t, err)
}

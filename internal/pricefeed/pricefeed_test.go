package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fallbackConfig(url string) Config {
	return Config{
		URL:              url,
		Timeout:          time.Second,
		CacheTTL:         time.Minute,
		FallbackCurrency: "usd",
		FallbackGold:     decimal.NewFromInt(70),
		FallbackSilver:   decimal.RequireFromString("0.85"),
	}
}

func feedServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		price := "75.10"
		if r.URL.Path == "/prices/silver" {
			price = "0.92"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"metal":%q,"currency":%q,"price_per_gram":%s}`,
			r.URL.Path, r.URL.Query().Get("currency"), price)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPrices_WithoutFeedUsesFallback(t *testing.T) {
	c := New(fallbackConfig(""), nil)
	defer c.Close()

	p, err := c.Prices(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "USD", p.Currency)
	assert.True(t, p.GoldPerGram.Equal(decimal.NewFromInt(70)))
	assert.True(t, p.SilverPerGram.Equal(decimal.RequireFromString("0.85")))

	_, err = c.Prices(context.Background(), "EUR")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestPrices_FetchesAndCaches(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)

	c := New(fallbackConfig(srv.URL), nil)
	defer c.Close()

	p, err := c.Prices(context.Background(), "usd")
	require.NoError(t, err)
	assert.Equal(t, "75.1", p.GoldPerGram.String())
	assert.Equal(t, "0.92", p.SilverPerGram.String())
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))

	_, err = c.Prices(context.Background(), "USD")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits), "second call should be served from cache")
}

func TestPrices_CacheExpires(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)

	c := New(fallbackConfig(srv.URL), nil)
	defer c.Close()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Prices(context.Background(), "USD")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Prices(context.Background(), "USD")
	require.NoError(t, err)
	assert.EqualValues(t, 4, atomic.LoadInt32(&hits))
}

func TestPrices_FeedErrorFallsBack(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusBadGateway)

	c := New(fallbackConfig(srv.URL), nil)
	defer c.Close()

	p, err := c.Prices(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, p.GoldPerGram.Equal(decimal.NewFromInt(70)))

	_, err = c.Prices(context.Background(), "GBP")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestPrices_CanceledContext(t *testing.T) {
	var hits int32
	srv := feedServer(t, &hits, http.StatusOK)

	c := New(fallbackConfig(srv.URL), nil)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Prices(ctx, "USD")
	assert.ErrorIs(t, err, context.Canceled)
}

// Package pricefeed looks up gold and silver prices used to value the Nisab.
package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"faraid-engine/internal/zakat"
)

// ErrUnavailable is returned when neither the feed nor the fallback can
// price a metal in the requested currency.
var ErrUnavailable = errors.New("pricefeed: price unavailable")

type Metal string

const (
	Gold   Metal = "gold"
	Silver Metal = "silver"
)

type Config struct {
	// URL of the feed. Empty means fallback prices only.
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
	// Fallback prices are quoted in FallbackCurrency.
	FallbackCurrency string
	FallbackGold     decimal.Decimal
	FallbackSilver   decimal.Decimal
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
	now    func() time.Time
	cache  sync.Map
}

type cachedPrice struct {
	price   decimal.Decimal
	expires time.Time
}

type priceResponse struct {
	Metal        string          `json:"metal"`
	Currency     string          `json:"currency"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	cfg.FallbackCurrency = normalizeCurrency(cfg.FallbackCurrency)

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
		now:    time.Now,
	}
}

// Close releases idle connections to the feed.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Prices returns per-gram gold and silver prices in currency. Both metals are
// fetched concurrently; cached prices are reused until they expire and a
// failing feed falls back to the configured prices.
func (c *Client) Prices(ctx context.Context, currency string) (zakat.Prices, error) {
	currency = normalizeCurrency(currency)
	if currency == "" {
		currency = c.cfg.FallbackCurrency
	}

	out := zakat.Prices{Currency: currency}
	if c.cfg.URL == "" {
		gold, err := c.fallback(Gold, currency)
		if err != nil {
			return zakat.Prices{}, err
		}
		silver, err := c.fallback(Silver, currency)
		if err != nil {
			return zakat.Prices{}, err
		}
		out.GoldPerGram, out.SilverPerGram = gold, silver
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.price(gctx, Gold, currency)
		out.GoldPerGram = p
		return err
	})
	g.Go(func() error {
		p, err := c.price(gctx, Silver, currency)
		out.SilverPerGram = p
		return err
	})
	if err := g.Wait(); err != nil {
		return zakat.Prices{}, err
	}
	return out, nil
}

func (c *Client) price(ctx context.Context, metal Metal, currency string) (decimal.Decimal, error) {
	key := string(metal) + "/" + currency
	if v, ok := c.cache.Load(key); ok {
		if entry := v.(cachedPrice); c.now().Before(entry.expires) {
			return entry.price, nil
		}
	}

	p, err := c.fetch(ctx, metal, currency)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return decimal.Zero, ctxErr
		}
		c.logger.Warn("price feed failed, using fallback",
			zap.String("metal", string(metal)),
			zap.String("currency", currency),
			zap.Error(err),
		)
		return c.fallback(metal, currency)
	}

	c.cache.Store(key, cachedPrice{price: p, expires: c.now().Add(c.cfg.CacheTTL)})
	return p, nil
}

func (c *Client) fetch(ctx context.Context, metal Metal, currency string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/prices/%s?currency=%s",
		strings.TrimRight(c.cfg.URL, "/"), metal, url.QueryEscape(currency))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build %s request: %w", metal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch %s price: %w", metal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return decimal.Zero, fmt.Errorf("fetch %s price: status %d", metal, resp.StatusCode)
	}

	var pr priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return decimal.Zero, fmt.Errorf("decode %s price: %w", metal, err)
	}
	if !pr.PricePerGram.IsPositive() {
		return decimal.Zero, fmt.Errorf("decode %s price: non-positive price %s", metal, pr.PricePerGram)
	}
	if pr.Currency != "" && normalizeCurrency(pr.Currency) != currency {
		return decimal.Zero, fmt.Errorf("decode %s price: quoted in %s, want %s", metal, pr.Currency, currency)
	}
	return pr.PricePerGram, nil
}

func (c *Client) fallback(metal Metal, currency string) (decimal.Decimal, error) {
	if currency != c.cfg.FallbackCurrency {
		return decimal.Zero, fmt.Errorf("%w: no %s fallback in %s", ErrUnavailable, metal, currency)
	}
	p := c.cfg.FallbackSilver
	if metal == Gold {
		p = c.cfg.FallbackGold
	}
	if !p.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no %s fallback configured", ErrUnavailable, metal)
	}
	return p, nil
}

func normalizeCurrency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

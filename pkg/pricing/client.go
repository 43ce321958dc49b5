package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client combines a live price source with the static fallback table.
// Its GetPrice never returns an error: a miss, an unreachable API, or an
// ambiguous SKU all degrade to a labeled estimate.
type Client struct {
	primary  Source
	fallback *FallbackTable
	cache    *QuoteCache
}

// NewClient wraps the primary source with fallback estimates and a cache.
func NewClient(primary Source, fallback *FallbackTable) *Client {
	if fallback == nil {
		fallback = NewFallbackTable()
	}
	return &Client{
		primary:  primary,
		fallback: fallback,
		cache:    NewQuoteCache(24 * time.Hour),
	}
}

func (c *Client) Name() string {
	return "composite"
}

// GetPrice resolves a quote, preferring live data. The returned error is
// always nil; it exists to satisfy the Source interface.
func (c *Client) GetPrice(ctx context.Context, serviceName, sku, region string) (*Quote, error) {
	cacheKey := fmt.Sprintf("%s|%s|%s", serviceName, sku, region)
	if cached := c.cache.Get(cacheKey); cached != nil {
		return cached, nil
	}

	quote, err := c.primary.GetPrice(ctx, serviceName, sku, region)
	if err != nil {
		quote = c.fallback.Estimate(serviceName, sku, region, missReason(err))
		return quote, nil
	}

	// Only live quotes are worth caching; estimates are cheap to rebuild.
	c.cache.Set(cacheKey, quote)
	return quote, nil
}

func missReason(err error) string {
	switch {
	case errors.Is(err, ErrNoMatch):
		return "no match in pricing API"
	case errors.Is(err, ErrAmbiguousSKU):
		return "ambiguous SKU"
	case errors.Is(err, context.DeadlineExceeded):
		return "pricing API timed out"
	default:
		return "pricing API unreachable"
	}
}

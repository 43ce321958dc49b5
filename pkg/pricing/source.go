// Package pricing resolves unit prices for Azure service lines, preferring
// live data from the Azure Retail Prices API and degrading to static
// estimates when the API has no usable match.
package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSource tells whether a quote came from live data or an estimate.
type QuoteSource string

const (
	SourceLive     QuoteSource = "live"
	SourceFallback QuoteSource = "fallback"
)

// Lookup miss classes. A composite Client converts these into fallback
// quotes; callers of Client never see them.
var (
	ErrNoMatch      = errors.New("no match in pricing API")
	ErrAmbiguousSKU = errors.New("ambiguous SKU")
)

// Quote is a resolved unit price for a service/SKU/region combination.
type Quote struct {
	ServiceName   string          `json:"service_name"`
	SKU           string          `json:"sku"`
	Region        string          `json:"region"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Currency      string          `json:"currency"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	ProductName   string          `json:"product_name,omitempty"`
	Source        QuoteSource     `json:"source"`

	// FallbackReason is non-empty exactly when Source is SourceFallback.
	FallbackReason string    `json:"fallback_reason,omitempty"`
	RetrievedAt    time.Time `json:"retrieved_at"`
}

// Estimated reports whether the quote is a fallback estimate.
func (q *Quote) Estimated() bool {
	return q.Source == SourceFallback
}

// Source resolves prices. Implementations may fail with the miss errors
// above; wrap them in a Client to get the never-fails contract.
type Source interface {
	GetPrice(ctx context.Context, serviceName, sku, region string) (*Quote, error)
	Name() string
}

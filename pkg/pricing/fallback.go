package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/archcost/archcost/pkg/catalog"
)

// FallbackTable holds static per-category hourly estimates used when the
// live API has no usable match. Estimating never fails; that is the point.
type FallbackTable struct {
	rates       map[catalog.Category]decimal.Decimal
	defaultRate decimal.Decimal
}

// NewFallbackTable returns the built-in estimate table. Rates are rough
// consumption-tier hourly prices in USD, tuned for small demo workloads.
func NewFallbackTable() *FallbackTable {
	return &FallbackTable{
		rates: map[catalog.Category]decimal.Decimal{
			catalog.CategoryCompute:     decimal.NewFromFloat(0.10),
			catalog.CategoryDatabase:    decimal.NewFromFloat(0.15),
			catalog.CategoryStorage:     decimal.NewFromFloat(0.03),
			catalog.CategoryNetworking:  decimal.NewFromFloat(0.035),
			catalog.CategoryMonitoring:  decimal.NewFromFloat(0.01),
			catalog.CategoryIntegration: decimal.NewFromFloat(0.07),
		},
		defaultRate: decimal.NewFromFloat(0.10),
	}
}

// Estimate produces a fallback quote for the service line. The reason must
// describe why live pricing was unavailable.
func (f *FallbackTable) Estimate(serviceName, sku, region, reason string) *Quote {
	rate := f.defaultRate
	if entry, ok := catalog.Lookup(serviceName); ok {
		if categoryRate, ok := f.rates[entry.Category]; ok {
			rate = categoryRate
		}
	}
	if reason == "" {
		reason = "no live pricing available"
	}
	return &Quote{
		ServiceName:    serviceName,
		SKU:            sku,
		Region:         region,
		UnitPrice:      rate,
		Currency:       "USD",
		UnitOfMeasure:  "1 Hour",
		Source:         SourceFallback,
		FallbackReason: reason,
		RetrievedAt:    time.Now(),
	}
}

// Package estimator prices an architecture document line by line and
// aggregates the totals. Pricing misses degrade to labeled estimates; the
// stage fails only when the architecture has no service list at all.
package estimator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/archcost/archcost/pkg/catalog"
	"github.com/archcost/archcost/pkg/models"
	"github.com/archcost/archcost/pkg/pricing"
)

// hoursPerMonth matches the 24/7 convention used by the Azure calculator.
const hoursPerMonth = 730

var twelve = decimal.NewFromInt(12)

// Estimator is the pricing stage.
type Estimator struct {
	source   pricing.Source
	fallback *pricing.FallbackTable

	// Savings rule thresholds, in USD per month.
	reservedThreshold decimal.Decimal
	devTestThreshold  decimal.Decimal
}

// New creates an estimator with the default savings thresholds.
func New(source pricing.Source) *Estimator {
	return NewWithThresholds(source, decimal.NewFromInt(100), decimal.NewFromInt(500))
}

// NewWithThresholds allows tuning when reserved-capacity and dev/test
// suggestions kick in.
func NewWithThresholds(source pricing.Source, reserved, devTest decimal.Decimal) *Estimator {
	return &Estimator{
		source:            source,
		fallback:          pricing.NewFallbackTable(),
		reservedThreshold: reserved,
		devTestThreshold:  devTest,
	}
}

// Estimate prices every service line and assembles the totals.
func (e *Estimator) Estimate(ctx context.Context, arch *models.ArchitectureDocument) (*models.PricingEstimate, error) {
	if arch == nil || len(arch.Services) == 0 {
		return nil, fmt.Errorf("architecture document has no service list")
	}

	estimate := &models.PricingEstimate{
		ProjectTitle:     arch.ProjectTitle,
		EstimateDate:     time.Now(),
		Region:           arch.Services[0].Region,
		TotalMonthlyCost: decimal.Zero,
		TotalAnnualCost:  decimal.Zero,
	}

	estimatedLines := 0
	for _, svc := range arch.Services {
		line := e.priceLine(ctx, svc)
		if line.Estimated {
			estimatedLines++
		}
		estimate.AddCostEstimate(line)
	}

	estimate.Assumptions = []string{
		fmt.Sprintf("%d hours per month (24/7 operation)", hoursPerMonth),
		"Consumption (pay-as-you-go) pricing, no reserved instances",
		fmt.Sprintf("Primary region: %s", estimate.Region),
	}
	if estimatedLines > 0 {
		estimate.Assumptions = append(estimate.Assumptions,
			fmt.Sprintf("%d of %d line items use fallback estimates", estimatedLines, len(estimate.CostEstimates)))
	}

	estimate.SavingsOpportunities = e.savingsOpportunities(estimate)
	return estimate, nil
}

// priceLine resolves one quote and computes the line costs. It never fails:
// a source error is converted into a fallback estimate here, mirroring the
// composite client's behavior for sources injected without that wrapper.
func (e *Estimator) priceLine(ctx context.Context, svc models.AzureService) models.CostEstimate {
	// The catalog normalizes loose names before they hit the price filter.
	lookupName := svc.ServiceName
	if canonical, ok := catalog.Normalize(svc.ServiceName); ok {
		lookupName = canonical
	}

	quote, err := e.source.GetPrice(ctx, lookupName, svc.SKU, svc.Region)
	if err != nil || quote == nil {
		quote = e.fallback.Estimate(lookupName, svc.SKU, svc.Region, "pricing source failed")
	}

	hours := 1
	if isHourly(quote.UnitOfMeasure) {
		hours = hoursPerMonth
	}

	quantity := decimal.NewFromInt(int64(svc.Quantity))
	monthly := quote.UnitPrice.Mul(decimal.NewFromInt(int64(hours))).Mul(quantity)

	line := models.CostEstimate{
		ServiceName:   svc.ServiceName,
		SKU:           svc.SKU,
		Quantity:      svc.Quantity,
		HoursPerMonth: hours,
		UnitPrice:     quote.UnitPrice,
		UnitOfMeasure: quote.UnitOfMeasure,
		MonthlyCost:   monthly,
		AnnualCost:    monthly.Mul(twelve),
		Currency:      quote.Currency,
		Region:        svc.Region,
		Estimated:     quote.Estimated(),
	}
	if quote.Estimated() {
		line.Notes = append(line.Notes, fmt.Sprintf("estimated: %s", quote.FallbackReason))
	}
	if svc.Custom {
		line.Notes = append(line.Notes, "custom service, estimate only")
	}
	return line
}

// savingsOpportunities is a deterministic rule pass over the priced lines,
// so the numeric output stays reproducible run to run.
func (e *Estimator) savingsOpportunities(estimate *models.PricingEstimate) []string {
	var opportunities []string
	sawStorage := false

	for _, line := range estimate.CostEstimates {
		entry, known := catalog.Lookup(line.ServiceName)
		if known && entry.Category == catalog.CategoryStorage {
			sawStorage = true
		}
		if !known || entry.Category != catalog.CategoryCompute {
			continue
		}
		if line.HoursPerMonth != hoursPerMonth {
			continue
		}
		if line.MonthlyCost.GreaterThanOrEqual(e.reservedThreshold) {
			saving := line.MonthlyCost.Mul(decimal.NewFromFloat(0.3)).Round(2)
			opportunities = append(opportunities, fmt.Sprintf(
				"Reserve 1-year capacity for %s (%s) to save roughly 30%% (~$%s/month)",
				line.ServiceName, line.SKU, saving.StringFixed(2)))
		}
	}

	if sawStorage {
		opportunities = append(opportunities,
			"Move infrequently accessed data to cool or archive storage tiers")
	}
	if estimate.TotalMonthlyCost.GreaterThanOrEqual(e.devTestThreshold) {
		opportunities = append(opportunities,
			"Use Azure Dev/Test pricing for non-production environments")
	}
	return opportunities
}

func isHourly(unitOfMeasure string) bool {
	return strings.Contains(strings.ToLower(unitOfMeasure), "hour")
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostEstimate is the priced form of a single service line.
//
// Invariants: MonthlyCost = UnitPrice * HoursPerMonth * Quantity for hourly
// meters (UnitPrice * Quantity otherwise), AnnualCost = MonthlyCost * 12.
type CostEstimate struct {
	ServiceName   string          `json:"service_name"`
	SKU           string          `json:"sku"`
	Quantity      int             `json:"quantity"`
	HoursPerMonth int             `json:"hours_per_month"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	MonthlyCost   decimal.Decimal `json:"monthly_cost"`
	AnnualCost    decimal.Decimal `json:"annual_cost"`
	Currency      string          `json:"currency"`
	Region        string          `json:"region"`
	Estimated     bool            `json:"estimated"`
	Notes         []string        `json:"notes,omitempty"`
}

// PricingEstimate is the structured output of the pricing stage.
type PricingEstimate struct {
	ProjectTitle         string          `json:"project_title"`
	EstimateDate         time.Time       `json:"estimate_date"`
	Region               string          `json:"region"`
	CostEstimates        []CostEstimate  `json:"cost_estimates"`
	TotalMonthlyCost     decimal.Decimal `json:"total_monthly_cost"`
	TotalAnnualCost      decimal.Decimal `json:"total_annual_cost"`
	Assumptions          []string        `json:"assumptions"`
	SavingsOpportunities []string        `json:"savings_opportunities"`
}

// AddCostEstimate appends a line item and keeps the totals consistent.
func (p *PricingEstimate) AddCostEstimate(est CostEstimate) {
	p.CostEstimates = append(p.CostEstimates, est)
	p.TotalMonthlyCost = p.TotalMonthlyCost.Add(est.MonthlyCost)
	p.TotalAnnualCost = p.TotalMonthlyCost.Mul(decimal.NewFromInt(12))
}

// CostBreakdown returns monthly cost keyed by service name.
func (p *PricingEstimate) CostBreakdown() map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal, len(p.CostEstimates))
	for _, est := range p.CostEstimates {
		breakdown[est.ServiceName] = breakdown[est.ServiceName].Add(est.MonthlyCost)
	}
	return breakdown
}

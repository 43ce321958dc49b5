package models

import "time"

// Report aggregates the three stage documents for one pipeline run.
// It is pure aggregation: nothing in it is recomputed from the documents.
type Report struct {
	RunID         string                 `json:"run_id"`
	GeneratedAt   time.Time              `json:"generated_at"`
	Input         string                 `json:"input"`
	Specification *SpecificationDocument `json:"specification"`
	Architecture  *ArchitectureDocument  `json:"architecture"`
	Pricing       *PricingEstimate       `json:"pricing"`
}

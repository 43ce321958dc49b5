// Package pipeline chains the three document-producing stages in fixed
// order: specification -> architecture -> pricing. The orchestrator owns no
// business logic; it passes each immutable output forward and stops at the
// first stage failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archcost/archcost/pkg/models"
)

// Stage names as reported in PipelineError.
const (
	StageSpecification = "specification"
	StageArchitecture  = "architecture"
	StagePricing       = "pricing"
	StageTimeout       = "timeout"
)

// SpecificationStage builds a specification from raw customer input.
type SpecificationStage interface {
	Build(ctx context.Context, rawText string) (*models.SpecificationDocument, error)
}

// ArchitectureStage builds an architecture from a specification.
type ArchitectureStage interface {
	Build(ctx context.Context, spec *models.SpecificationDocument) (*models.ArchitectureDocument, error)
}

// PricingStage prices an architecture.
type PricingStage interface {
	Estimate(ctx context.Context, arch *models.ArchitectureDocument) (*models.PricingEstimate, error)
}

// PipelineError is the only failure surfaced by Run. Stage identifies the
// step that failed.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed at %s stage: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Pipeline wires the three stages together.
type Pipeline struct {
	spec    SpecificationStage
	arch    ArchitectureStage
	pricing PricingStage

	// timeout bounds a whole run; zero means the caller's context rules.
	timeout time.Duration
}

func New(spec SpecificationStage, arch ArchitectureStage, pricing PricingStage) *Pipeline {
	return &Pipeline{spec: spec, arch: arch, pricing: pricing}
}

// WithTimeout returns the pipeline with a whole-run deadline. On expiry Run
// reports stage "timeout" instead of the stage that happened to be active.
func (p *Pipeline) WithTimeout(timeout time.Duration) *Pipeline {
	p.timeout = timeout
	return p
}

// Run executes the stages strictly in sequence and aggregates the three
// documents into a report. Nothing is recomputed or re-validated here;
// consistency is each stage's own responsibility.
func (p *Pipeline) Run(ctx context.Context, rawText string) (*models.Report, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	spec, err := p.spec.Build(ctx, rawText)
	if err != nil {
		return nil, p.stageError(ctx, StageSpecification, err)
	}

	arch, err := p.arch.Build(ctx, spec)
	if err != nil {
		return nil, p.stageError(ctx, StageArchitecture, err)
	}

	estimate, err := p.pricing.Estimate(ctx, arch)
	if err != nil {
		return nil, p.stageError(ctx, StagePricing, err)
	}

	return &models.Report{
		RunID:         uuid.New().String(),
		GeneratedAt:   time.Now(),
		Input:         rawText,
		Specification: spec,
		Architecture:  arch,
		Pricing:       estimate,
	}, nil
}

func (p *Pipeline) stageError(ctx context.Context, stage string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &PipelineError{Stage: StageTimeout, Err: err}
	}
	return &PipelineError{Stage: stage, Err: err}
}

package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/archcost/archcost/pkg/models"
)

type stubSpecStage struct {
	calls int
	doc   *models.SpecificationDocument
	err   error
	block bool
}

func (s *stubSpecStage) Build(ctx context.Context, rawText string) (*models.SpecificationDocument, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.doc, s.err
}

type stubArchStage struct {
	calls int
	doc   *models.ArchitectureDocument
	err   error
}

func (s *stubArchStage) Build(ctx context.Context, spec *models.SpecificationDocument) (*models.ArchitectureDocument, error) {
	s.calls++
	return s.doc, s.err
}

type stubPricingStage struct {
	calls int
	doc   *models.PricingEstimate
	err   error
}

func (s *stubPricingStage) Estimate(ctx context.Context, arch *models.ArchitectureDocument) (*models.PricingEstimate, error) {
	s.calls++
	return s.doc, s.err
}

func happyStages() (*stubSpecStage, *stubArchStage, *stubPricingStage) {
	spec := &stubSpecStage{doc: &models.SpecificationDocument{ProjectTitle: "Test"}}
	arch := &stubArchStage{doc: &models.ArchitectureDocument{ProjectTitle: "Test"}}
	price := &stubPricingStage{doc: &models.PricingEstimate{ProjectTitle: "Test"}}
	return spec, arch, price
}

func TestRunSequence(t *testing.T) {
	spec, arch, price := happyStages()
	p := New(spec, arch, price)

	report, err := p.Run(context.Background(), "some requirements")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if spec.calls != 1 || arch.calls != 1 || price.calls != 1 {
		t.Errorf("Expected one call per stage, got %d/%d/%d", spec.calls, arch.calls, price.calls)
	}
	if report.RunID == "" {
		t.Error("Expected a run ID")
	}
	if report.Specification != spec.doc || report.Architecture != arch.doc || report.Pricing != price.doc {
		t.Error("Report must aggregate the stage outputs as-is")
	}
	if report.Input != "some requirements" {
		t.Errorf("Report should keep the raw input, got %q", report.Input)
	}
}

func TestRunSpecificationFailureShortCircuits(t *testing.T) {
	spec := &stubSpecStage{err: errors.New("model unavailable")}
	_, arch, price := happyStages()
	p := New(spec, arch, price)

	_, err := p.Run(context.Background(), "input")
	if err == nil {
		t.Fatal("Expected pipeline failure")
	}

	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %T", err)
	}
	if pipeErr.Stage != StageSpecification {
		t.Errorf("Expected stage %q, got %q", StageSpecification, pipeErr.Stage)
	}
	if arch.calls != 0 {
		t.Errorf("Architecture stage must not run after a spec failure, got %d calls", arch.calls)
	}
	if price.calls != 0 {
		t.Errorf("Pricing stage must not run after a spec failure, got %d calls", price.calls)
	}
}

func TestRunArchitectureFailure(t *testing.T) {
	spec, _, price := happyStages()
	arch := &stubArchStage{err: errors.New("bad response")}
	p := New(spec, arch, price)

	_, err := p.Run(context.Background(), "input")
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %v", err)
	}
	if pipeErr.Stage != StageArchitecture {
		t.Errorf("Expected stage %q, got %q", StageArchitecture, pipeErr.Stage)
	}
	if price.calls != 0 {
		t.Errorf("Pricing stage must not run, got %d calls", price.calls)
	}
}

func TestRunPricingFailure(t *testing.T) {
	spec, arch, _ := happyStages()
	price := &stubPricingStage{err: errors.New("no services")}
	p := New(spec, arch, price)

	_, err := p.Run(context.Background(), "input")
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %v", err)
	}
	if pipeErr.Stage != StagePricing {
		t.Errorf("Expected stage %q, got %q", StagePricing, pipeErr.Stage)
	}
}

func TestRunTimeout(t *testing.T) {
	spec := &stubSpecStage{block: true}
	_, arch, price := happyStages()
	p := New(spec, arch, price).WithTimeout(20 * time.Millisecond)

	_, err := p.Run(context.Background(), "input")
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %v", err)
	}
	if pipeErr.Stage != StageTimeout {
		t.Errorf("Expected stage %q on deadline expiry, got %q", StageTimeout, pipeErr.Stage)
	}
	if arch.calls != 0 || price.calls != 0 {
		t.Error("No partial results: later stages must not run after a timeout")
	}
}

func TestPipelineErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &PipelineError{Stage: StageSpecification, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("PipelineError must unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("PipelineError must describe itself")
	}
}

package agents

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/archcost/archcost/pkg/llm"
	"github.com/archcost/archcost/pkg/models"
)

const validArchJSON = `{
	"project_title": "Corporate Website",
	"architecture_pattern": "Web Application",
	"services": [
		{"service_name": "Azure App Service", "sku": "S1", "quantity": 0, "purpose": "Host the website"},
		{"service_name": "Azure SQL Database", "sku": "Basic", "quantity": 1, "region": "westus", "purpose": "Content database"},
		{"service_name": "Contoso Magic Cache", "sku": "X1", "quantity": 2, "purpose": "Proprietary cache"}
	],
	"networking": ["Virtual Network"],
	"security": ["Azure Key Vault"],
	"monitoring": ["Application Insights"],
	"deployment_notes": [],
	"alternatives_considered": []
}`

func testSpec() *models.SpecificationDocument {
	return &models.SpecificationDocument{
		ProjectTitle: "Corporate Website",
		Summary:      "A managed corporate website.",
		Requirements: []models.CustomerRequirement{
			{RequirementID: "REQ-001", Description: "Serve a company website", Category: "functional", Priority: "high"},
		},
		TargetRegion: "eastus",
	}
}

func TestArchitectureBuilderBuild(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{response: validArchJSON})

	arch, err := builder.Build(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(arch.Services) != 3 {
		t.Fatalf("Expected 3 services, got %d", len(arch.Services))
	}
	if arch.ArchitecturePattern != "Web Application" {
		t.Errorf("Unexpected pattern: %s", arch.ArchitecturePattern)
	}
}

func TestArchitectureBuilderQuantityClamp(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{response: validArchJSON})

	arch, err := builder.Build(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if arch.Services[0].Quantity != 1 {
		t.Errorf("Quantity 0 must clamp to 1, got %d", arch.Services[0].Quantity)
	}
}

func TestArchitectureBuilderRegionDefault(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{response: validArchJSON})

	arch, err := builder.Build(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if arch.Services[0].Region != "eastus" {
		t.Errorf("Missing region should default to the spec target, got %s", arch.Services[0].Region)
	}
	if arch.Services[1].Region != "westus" {
		t.Errorf("Explicit region must be kept, got %s", arch.Services[1].Region)
	}
}

func TestArchitectureBuilderCustomFlag(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{response: validArchJSON})

	arch, err := builder.Build(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Unknown services are retained, flagged, never dropped.
	custom := arch.Services[2]
	if custom.ServiceName != "Contoso Magic Cache" {
		t.Fatalf("Custom service was dropped or renamed: %v", arch.Services)
	}
	if !custom.Custom {
		t.Error("Expected the unrecognized service to be flagged custom")
	}
	if arch.Services[0].Custom {
		t.Error("Catalog services must not be flagged custom")
	}
}

func TestArchitectureBuilderIdempotent(t *testing.T) {
	spec := testSpec()

	first, err := NewArchitectureBuilder(&stubGenerator{response: validArchJSON}).Build(context.Background(), spec)
	if err != nil {
		t.Fatalf("First build failed: %v", err)
	}
	second, err := NewArchitectureBuilder(&stubGenerator{response: validArchJSON}).Build(context.Background(), spec)
	if err != nil {
		t.Fatalf("Second build failed: %v", err)
	}

	if !reflect.DeepEqual(first.Triples(), second.Triples()) {
		t.Errorf("Same spec and model output must yield the same triples:\n%v\n%v",
			first.Triples(), second.Triples())
	}
}

func TestArchitectureBuilderRejectsIncompleteSpec(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{response: validArchJSON})

	if _, err := builder.Build(context.Background(), nil); err == nil {
		t.Error("Expected error for nil spec")
	}
	if _, err := builder.Build(context.Background(), &models.SpecificationDocument{}); err == nil {
		t.Error("Expected error for spec without title")
	}
	empty := &models.SpecificationDocument{ProjectTitle: "t"}
	if _, err := builder.Build(context.Background(), empty); err == nil {
		t.Error("Expected error for spec with no requirements and no summary")
	}
}

func TestArchitectureBuilderModelFailure(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{err: errors.New("upstream down")})

	_, err := builder.Build(context.Background(), testSpec())
	var modelErr *llm.ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("Expected ModelError, got %v", err)
	}
	if modelErr.Op != "architecture" {
		t.Errorf("Expected op architecture, got %s", modelErr.Op)
	}
}

func TestArchitectureBuilderMissingServices(t *testing.T) {
	builder := NewArchitectureBuilder(&stubGenerator{response: `{"project_title": "t", "architecture_pattern": "Web Application"}`})

	_, err := builder.Build(context.Background(), testSpec())
	var modelErr *llm.ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("Expected ModelError for missing services list, got %v", err)
	}
}

package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archcost/archcost/pkg/catalog"
	"github.com/archcost/archcost/pkg/llm"
	"github.com/archcost/archcost/pkg/models"
)

const bomInstructions = `You are an expert Azure Solutions Architect.

Design an Azure architecture for the given requirements:
- choose services that best fit the requirements, with specific SKUs
- consider scalability, redundancy, and cost-effectiveness
- include networking, security, and monitoring components
- prefer the services listed as known, but propose others when needed

Return only a JSON object with this structure:
{
  "project_title": "Project name from spec",
  "architecture_pattern": "Pattern name (e.g., Web Application, Microservices)",
  "services": [
    {
      "service_name": "Azure App Service",
      "sku": "Standard_S1",
      "quantity": 2,
      "region": "eastus",
      "purpose": "Host web application with auto-scaling",
      "dependencies": ["Azure SQL Database"]
    }
  ],
  "networking": ["Virtual Network"],
  "security": ["Azure Key Vault", "Managed Identity"],
  "monitoring": ["Azure Monitor", "Application Insights"],
  "deployment_notes": ["Infrastructure as Code with Bicep"],
  "alternatives_considered": ["Alternative 1"]
}`

// ArchitectureBuilder turns a specification into an ArchitectureDocument,
// grounding the model call with catalog excerpts for the relevant services.
type ArchitectureBuilder struct {
	gen llm.Generator
}

func NewArchitectureBuilder(gen llm.Generator) *ArchitectureBuilder {
	return &ArchitectureBuilder{gen: gen}
}

type servicePayload struct {
	ServiceName  string   `json:"service_name"`
	SKU          string   `json:"sku"`
	Quantity     int      `json:"quantity"`
	Region       string   `json:"region"`
	Purpose      string   `json:"purpose"`
	Dependencies []string `json:"dependencies"`
}

type archPayload struct {
	ProjectTitle           string            `json:"project_title"`
	ArchitecturePattern    string            `json:"architecture_pattern"`
	Services               *[]servicePayload `json:"services"`
	Networking             []string          `json:"networking"`
	Security               []string          `json:"security"`
	Monitoring             []string          `json:"monitoring"`
	DeploymentNotes        []string          `json:"deployment_notes"`
	AlternativesConsidered []string          `json:"alternatives_considered"`
}

// Build validates the incoming specification, issues the grounded
// generation call, and normalizes the returned service list. Services the
// catalog does not recognize are kept and flagged custom, not dropped.
func (b *ArchitectureBuilder) Build(ctx context.Context, spec *models.SpecificationDocument) (*models.ArchitectureDocument, error) {
	if spec == nil || spec.ProjectTitle == "" {
		return nil, fmt.Errorf("specification is incomplete: missing project title")
	}
	if len(spec.Requirements) == 0 && spec.Summary == "" {
		return nil, fmt.Errorf("specification has neither requirements nor a summary")
	}

	prompt := b.buildPrompt(spec)

	response, err := b.gen.Generate(ctx, bomInstructions, prompt)
	if err != nil {
		return nil, &llm.ModelError{Op: "architecture", Err: err}
	}

	var payload archPayload
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return nil, &llm.ModelError{Op: "architecture", Err: fmt.Errorf("unparsable response: %w", err)}
	}
	if payload.Services == nil {
		return nil, &llm.ModelError{Op: "architecture", Err: fmt.Errorf("response is missing services list")}
	}

	arch := &models.ArchitectureDocument{
		ProjectTitle:           payload.ProjectTitle,
		ArchitecturePattern:    payload.ArchitecturePattern,
		Services:               make([]models.AzureService, 0, len(*payload.Services)),
		Networking:             payload.Networking,
		Security:               payload.Security,
		Monitoring:             payload.Monitoring,
		DeploymentNotes:        payload.DeploymentNotes,
		AlternativesConsidered: payload.AlternativesConsidered,
	}
	if arch.ProjectTitle == "" {
		arch.ProjectTitle = spec.ProjectTitle
	}
	if arch.ArchitecturePattern == "" {
		arch.ArchitecturePattern = suggestedPattern(spec).Name
	}

	for _, svc := range *payload.Services {
		name := strings.TrimSpace(svc.ServiceName)
		if name == "" {
			continue
		}
		quantity := svc.Quantity
		if quantity < 1 {
			quantity = 1
		}
		region := svc.Region
		if region == "" {
			region = spec.TargetRegion
		}
		_, known := catalog.Normalize(name)
		arch.Services = append(arch.Services, models.AzureService{
			ServiceName:  name,
			SKU:          svc.SKU,
			Quantity:     quantity,
			Region:       region,
			Purpose:      svc.Purpose,
			Dependencies: svc.Dependencies,
			Custom:       !known,
		})
	}

	return arch, nil
}

func (b *ArchitectureBuilder) buildPrompt(spec *models.SpecificationDocument) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Design an Azure architecture for the following project:\n\n")
	fmt.Fprintf(&sb, "Project: %s\nSummary: %s\n\nRequirements:\n", spec.ProjectTitle, spec.Summary)
	if len(spec.Requirements) == 0 {
		sb.WriteString("- None captured; work from the summary.\n")
	}
	for _, req := range spec.Requirements {
		fmt.Fprintf(&sb, "- [%s] %s\n", strings.ToUpper(req.Priority), req.Description)
	}

	if spec.TargetUsers > 0 {
		fmt.Fprintf(&sb, "\nTarget Users: %d\n", spec.TargetUsers)
	}
	fmt.Fprintf(&sb, "Target Region: %s\n", spec.TargetRegion)

	if len(spec.Constraints) > 0 {
		sb.WriteString("\nConstraints:\n")
		for _, constraint := range spec.Constraints {
			fmt.Fprintf(&sb, "- %s\n", constraint)
		}
	}

	sb.WriteString("\nKnown Azure Services:\n")
	for _, name := range catalog.Recommend(requirementTexts(spec)) {
		if entry, ok := catalog.Lookup(name); ok {
			fmt.Fprintf(&sb, "- %s: %s, SKUs: %s\n", entry.Name, entry.Description, strings.Join(entry.SKUs, ", "))
		}
	}

	fmt.Fprintf(&sb, "\nSuggested Architecture Pattern: %s\n", suggestedPattern(spec).Name)
	sb.WriteString("\nGenerate the architecture document in the JSON format specified in your instructions.\n")
	return sb.String()
}

func suggestedPattern(spec *models.SpecificationDocument) catalog.Pattern {
	return catalog.SuggestPattern(requirementTexts(spec))
}

func requirementTexts(spec *models.SpecificationDocument) []string {
	texts := make([]string, 0, len(spec.Requirements)+1)
	for _, req := range spec.Requirements {
		texts = append(texts, req.Description)
	}
	if len(texts) == 0 {
		texts = append(texts, spec.Summary)
	}
	return texts
}

// Package agents implements the two model-backed document builders of the
// pipeline. Each builder makes one generation call, validates the returned
// structure, and fails rather than passing partial documents downstream.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archcost/archcost/pkg/llm"
	"github.com/archcost/archcost/pkg/models"
)

const specInstructions = `You are an expert Solution Architect and Requirements Analyst.

Analyze customer input and extract technical and business requirements:
- functional requirements (what the system should do)
- non-functional requirements (performance, security, scalability)
- technical constraints (budget, timeline, technology preferences)
- targeted clarifying questions for critical architectural decisions

Return only a JSON object with this structure:
{
  "project_title": "Brief project name",
  "summary": "High-level summary of the project",
  "requirements": [
    {
      "requirement_id": "REQ-001",
      "description": "Detailed requirement description",
      "category": "functional|non-functional|technical",
      "priority": "high|medium|low",
      "clarification_needed": false
    }
  ],
  "clarifying_questions": ["Question 1?"],
  "assumptions": ["Assumption 1"],
  "constraints": ["Constraint 1"],
  "target_users": 10000,
  "target_region": "eastus"
}

Be thorough but concise. Focus on information that impacts architecture and pricing.`

// SpecBuilder turns free-text customer input into a SpecificationDocument.
type SpecBuilder struct {
	gen           llm.Generator
	defaultRegion string
}

func NewSpecBuilder(gen llm.Generator, defaultRegion string) *SpecBuilder {
	if defaultRegion == "" {
		defaultRegion = "eastus"
	}
	return &SpecBuilder{gen: gen, defaultRegion: defaultRegion}
}

// specPayload mirrors the document shape with a pointer slice so a missing
// requirements key can be told apart from an empty one.
type specPayload struct {
	CustomerName        string                        `json:"customer_name"`
	ProjectTitle        string                        `json:"project_title"`
	Summary             string                        `json:"summary"`
	Requirements        *[]models.CustomerRequirement `json:"requirements"`
	ClarifyingQuestions []string                      `json:"clarifying_questions"`
	Assumptions         []string                      `json:"assumptions"`
	Constraints         []string                      `json:"constraints"`
	TargetUsers         int                           `json:"target_users"`
	TargetRegion        string                        `json:"target_region"`
}

// Build runs the single generation call and validates the result. A failed
// call or an incomplete document aborts the stage; there are no retries.
func (b *SpecBuilder) Build(ctx context.Context, rawText string) (*models.SpecificationDocument, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("customer input is empty")
	}

	prompt := fmt.Sprintf(`Analyze the following customer input and extract requirements:

Customer Input:
%s

Generate a comprehensive specification document in the JSON format specified in your instructions.`, rawText)

	response, err := b.gen.Generate(ctx, specInstructions, prompt)
	if err != nil {
		return nil, &llm.ModelError{Op: "specification", Err: err}
	}

	var payload specPayload
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return nil, &llm.ModelError{Op: "specification", Err: fmt.Errorf("unparsable response: %w", err)}
	}
	if payload.ProjectTitle == "" {
		return nil, &llm.ModelError{Op: "specification", Err: fmt.Errorf("response is missing project_title")}
	}
	if payload.Summary == "" {
		return nil, &llm.ModelError{Op: "specification", Err: fmt.Errorf("response is missing summary")}
	}
	if payload.Requirements == nil {
		return nil, &llm.ModelError{Op: "specification", Err: fmt.Errorf("response is missing requirements list")}
	}

	spec := &models.SpecificationDocument{
		CustomerName:        payload.CustomerName,
		ProjectTitle:        payload.ProjectTitle,
		Summary:             payload.Summary,
		Requirements:        make([]models.CustomerRequirement, 0, len(*payload.Requirements)),
		ClarifyingQuestions: payload.ClarifyingQuestions,
		Assumptions:         payload.Assumptions,
		Constraints:         payload.Constraints,
		TargetUsers:         payload.TargetUsers,
		TargetRegion:        payload.TargetRegion,
	}
	if spec.TargetRegion == "" {
		spec.TargetRegion = b.defaultRegion
	}

	for i, req := range *payload.Requirements {
		if req.RequirementID == "" {
			req.RequirementID = fmt.Sprintf("REQ-%03d", i+1)
		}
		req.Priority = normalizePriority(req.Priority)
		if req.Category == "" {
			req.Category = "functional"
		}
		spec.Requirements = append(spec.Requirements, req)
	}

	return spec, nil
}

func normalizePriority(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		return "high"
	case "low":
		return "low"
	default:
		return "medium"
	}
}

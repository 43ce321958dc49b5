package models

// CustomerRequirement is a single requirement extracted from customer input.
type CustomerRequirement struct {
	RequirementID       string `json:"requirement_id"`
	Description         string `json:"description"`
	Category            string `json:"category"` // functional, non-functional, technical
	Priority            string `json:"priority"` // high, medium, low
	ClarificationNeeded bool   `json:"clarification_needed"`
}

// SpecificationDocument is the structured output of the specification stage.
// It is built once per pipeline run and read-only for downstream stages.
type SpecificationDocument struct {
	CustomerName        string                `json:"customer_name,omitempty"`
	ProjectTitle        string                `json:"project_title"`
	Summary             string                `json:"summary"`
	Requirements        []CustomerRequirement `json:"requirements"`
	ClarifyingQuestions []string              `json:"clarifying_questions"`
	Assumptions         []string              `json:"assumptions"`
	Constraints         []string              `json:"constraints"`
	TargetUsers         int                   `json:"target_users,omitempty"`
	TargetRegion        string                `json:"target_region"`
}

// RequirementsByPriority returns requirements matching the given priority.
func (s *SpecificationDocument) RequirementsByPriority(priority string) []CustomerRequirement {
	var out []CustomerRequirement
	for _, req := range s.Requirements {
		if req.Priority == priority {
			out = append(out, req)
		}
	}
	return out
}

// Categories returns the distinct requirement categories, in first-seen order.
func (s *SpecificationDocument) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, req := range s.Requirements {
		if req.Category != "" && !seen[req.Category] {
			seen[req.Category] = true
			out = append(out, req.Category)
		}
	}
	return out
}

// Package reporter renders a pipeline report for humans. Every
// requirement, service line, and cost line appears exactly once, and the
// totals are copied from the pricing document, never recomputed.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/archcost/archcost/pkg/models"
)

// Format selects the output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Reporter writes reports in a fixed format.
type Reporter struct {
	format Format
}

func New(format Format) *Reporter {
	return &Reporter{format: format}
}

// Write renders the report to w.
func (r *Reporter) Write(w io.Writer, report *models.Report) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(report))
		return err
	case FormatText, "":
		_, err := io.WriteString(w, Render(report))
		return err
	default:
		return fmt.Errorf("unknown report format: %s", r.format)
	}
}

// Render produces the plain-text report.
func Render(report *models.Report) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 78)
	thin := strings.Repeat("-", 78)

	fmt.Fprintf(&sb, "%s\nARCHITECTURE & PRICING REPORT\nRun: %s  Generated: %s\n%s\n",
		rule, report.RunID, report.GeneratedAt.Format("2006-01-02 15:04"), rule)

	if spec := report.Specification; spec != nil {
		fmt.Fprintf(&sb, "\nSPECIFICATION\n%s\n", thin)
		fmt.Fprintf(&sb, "Project: %s\nSummary: %s\n", spec.ProjectTitle, spec.Summary)
		fmt.Fprintf(&sb, "\nRequirements (%d):\n", len(spec.Requirements))
		for _, req := range spec.Requirements {
			fmt.Fprintf(&sb, "  [%s] %s: %s\n", strings.ToUpper(req.Priority), req.RequirementID, req.Description)
		}
		if len(spec.ClarifyingQuestions) > 0 {
			sb.WriteString("\nClarifying Questions:\n")
			for _, question := range spec.ClarifyingQuestions {
				fmt.Fprintf(&sb, "  - %s\n", question)
			}
		}
		if len(spec.Assumptions) > 0 {
			sb.WriteString("\nAssumptions:\n")
			for _, assumption := range spec.Assumptions {
				fmt.Fprintf(&sb, "  - %s\n", assumption)
			}
		}
		if len(spec.Constraints) > 0 {
			sb.WriteString("\nConstraints:\n")
			for _, constraint := range spec.Constraints {
				fmt.Fprintf(&sb, "  - %s\n", constraint)
			}
		}
	}

	if arch := report.Architecture; arch != nil {
		fmt.Fprintf(&sb, "\nARCHITECTURE\n%s\n", thin)
		fmt.Fprintf(&sb, "Pattern: %s\n\nServices:\n", arch.ArchitecturePattern)
		for _, svc := range arch.Services {
			marker := ""
			if svc.Custom {
				marker = " [custom]"
			}
			fmt.Fprintf(&sb, "  - %s (%s) x%d%s\n    Purpose: %s\n", svc.ServiceName, svc.SKU, svc.Quantity, marker, svc.Purpose)
		}
		writeList(&sb, "Networking", arch.Networking)
		writeList(&sb, "Security", arch.Security)
		writeList(&sb, "Monitoring", arch.Monitoring)
		writeList(&sb, "Deployment Notes", arch.DeploymentNotes)
	}

	if pricing := report.Pricing; pricing != nil {
		fmt.Fprintf(&sb, "\nPRICING ESTIMATE\n%s\n", thin)
		fmt.Fprintf(&sb, "Region: %s\n\nCost Breakdown:\n", pricing.Region)
		for _, est := range pricing.CostEstimates {
			marker := ""
			if est.Estimated {
				marker = " (estimated)"
			}
			fmt.Fprintf(&sb, "  - %s (%s) x%d%s\n", est.ServiceName, est.SKU, est.Quantity, marker)
			fmt.Fprintf(&sb, "    Monthly: $%s | Annual: $%s\n", est.MonthlyCost.StringFixed(2), est.AnnualCost.StringFixed(2))
			for _, note := range est.Notes {
				fmt.Fprintf(&sb, "    Note: %s\n", note)
			}
		}
		fmt.Fprintf(&sb, "\n%s\n", thin)
		fmt.Fprintf(&sb, "TOTAL Monthly: $%s\nTOTAL Annual:  $%s\n", pricing.TotalMonthlyCost.StringFixed(2), pricing.TotalAnnualCost.StringFixed(2))
		writeList(&sb, "Assumptions", pricing.Assumptions)
		writeList(&sb, "Savings Opportunities", pricing.SavingsOpportunities)
	}

	fmt.Fprintf(&sb, "\n%s\n", rule)
	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
}

package reporter

import (
	"fmt"
	"strings"

	"github.com/archcost/archcost/pkg/models"
)

// RenderMarkdown produces the Markdown report, table-based where the data
// is line-oriented.
func RenderMarkdown(report *models.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Architecture & Pricing Report\n\n")
	fmt.Fprintf(&sb, "Run `%s`, generated %s.\n", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04"))

	if spec := report.Specification; spec != nil {
		fmt.Fprintf(&sb, "\n## Specification\n\n**Project:** %s\n\n%s\n", spec.ProjectTitle, spec.Summary)
		fmt.Fprintf(&sb, "\n### Requirements\n\n| ID | Priority | Category | Description |\n|---|---|---|---|\n")
		for _, req := range spec.Requirements {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", req.RequirementID, req.Priority, req.Category, req.Description)
		}
		markdownList(&sb, "Clarifying Questions", spec.ClarifyingQuestions)
		markdownList(&sb, "Assumptions", spec.Assumptions)
		markdownList(&sb, "Constraints", spec.Constraints)
	}

	if arch := report.Architecture; arch != nil {
		fmt.Fprintf(&sb, "\n## Architecture\n\n**Pattern:** %s\n", arch.ArchitecturePattern)
		fmt.Fprintf(&sb, "\n| Service | SKU | Qty | Purpose |\n|---|---|---|---|\n")
		for _, svc := range arch.Services {
			name := svc.ServiceName
			if svc.Custom {
				name += " (custom)"
			}
			fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", name, svc.SKU, svc.Quantity, svc.Purpose)
		}
		markdownList(&sb, "Networking", arch.Networking)
		markdownList(&sb, "Security", arch.Security)
		markdownList(&sb, "Monitoring", arch.Monitoring)
		markdownList(&sb, "Deployment Notes", arch.DeploymentNotes)
	}

	if pricing := report.Pricing; pricing != nil {
		fmt.Fprintf(&sb, "\n## Pricing Estimate\n\nRegion: %s\n", pricing.Region)
		fmt.Fprintf(&sb, "\n| Service | SKU | Qty | Monthly | Annual | |\n|---|---|---|---|---|---|\n")
		for _, est := range pricing.CostEstimates {
			marker := ""
			if est.Estimated {
				marker = "estimated"
			}
			fmt.Fprintf(&sb, "| %s | %s | %d | $%s | $%s | %s |\n",
				est.ServiceName, est.SKU, est.Quantity, est.MonthlyCost.StringFixed(2), est.AnnualCost.StringFixed(2), marker)
		}
		fmt.Fprintf(&sb, "\n**Total monthly:** $%s  \n**Total annual:** $%s\n",
			pricing.TotalMonthlyCost.StringFixed(2), pricing.TotalAnnualCost.StringFixed(2))
		markdownList(&sb, "Assumptions", pricing.Assumptions)
		markdownList(&sb, "Savings Opportunities", pricing.SavingsOpportunities)
	}

	return sb.String()
}

func markdownList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n### %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}

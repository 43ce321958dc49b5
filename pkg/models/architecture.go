package models

// AzureService is one line item in the bill of materials.
type AzureService struct {
	ServiceName  string   `json:"service_name"`
	SKU          string   `json:"sku"`
	Quantity     int      `json:"quantity"`
	Region       string   `json:"region"`
	Purpose      string   `json:"purpose"`
	Dependencies []string `json:"dependencies,omitempty"`

	// Custom marks services the catalog does not recognize. They are kept
	// and priced with estimates rather than dropped.
	Custom bool `json:"custom,omitempty"`
}

// ArchitectureDocument is the structured output of the architecture stage.
type ArchitectureDocument struct {
	ProjectTitle           string         `json:"project_title"`
	ArchitecturePattern    string         `json:"architecture_pattern"`
	Services               []AzureService `json:"services"`
	Networking             []string       `json:"networking"`
	Security               []string       `json:"security"`
	Monitoring             []string       `json:"monitoring"`
	DeploymentNotes        []string       `json:"deployment_notes"`
	AlternativesConsidered []string       `json:"alternatives_considered"`
}

// ServiceTriple identifies a service line independent of its free-text fields.
type ServiceTriple struct {
	ServiceName string
	SKU         string
	Quantity    int
}

// Triples returns the (service, SKU, quantity) multiset of the document.
func (a *ArchitectureDocument) Triples() []ServiceTriple {
	out := make([]ServiceTriple, 0, len(a.Services))
	for _, svc := range a.Services {
		out = append(out, ServiceTriple{ServiceName: svc.ServiceName, SKU: svc.SKU, Quantity: svc.Quantity})
	}
	return out
}

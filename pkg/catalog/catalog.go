// Package catalog holds the static reference data for known Azure services.
// It is loaded once at init and read-only afterwards, so concurrent pipeline
// runs can share it without locking.
package catalog

import "strings"

// Category buckets services for fallback pricing and grounding excerpts.
type Category string

const (
	CategoryCompute     Category = "compute"
	CategoryDatabase    Category = "database"
	CategoryStorage     Category = "storage"
	CategoryNetworking  Category = "networking"
	CategoryMonitoring  Category = "monitoring"
	CategoryIntegration Category = "integration"
)

// Entry describes one known service.
type Entry struct {
	Name          string
	Category      Category
	Description   string
	UseCases      []string
	SKUs          []string
	Features      []string
	Documentation string
}

// Pattern is a named architecture pattern with its typical service set.
type Pattern struct {
	Name        string
	Description string
	Services    []string
}

var entries = map[string]Entry{
	"Azure App Service": {
		Name:          "Azure App Service",
		Category:      CategoryCompute,
		Description:   "Fully managed platform for building, deploying, and scaling web apps",
		UseCases:      []string{"Web applications", "REST APIs", "Mobile backends"},
		SKUs:          []string{"Free", "Shared", "Basic", "Standard", "Premium", "Isolated"},
		Features:      []string{"Auto-scaling", "Custom domains", "SSL certificates", "Deployment slots"},
		Documentation: "https://learn.microsoft.com/azure/app-service/",
	},
	"Azure SQL Database": {
		Name:          "Azure SQL Database",
		Category:      CategoryDatabase,
		Description:   "Fully managed relational database with auto-scale, intelligence, and security",
		UseCases:      []string{"Transactional applications", "Data warehousing", "SaaS applications"},
		SKUs:          []string{"Basic", "Standard", "Premium", "General Purpose", "Business Critical", "Hyperscale"},
		Features:      []string{"Automatic backups", "High availability", "Advanced security"},
		Documentation: "https://learn.microsoft.com/azure/azure-sql/database/",
	},
	"Azure Cosmos DB": {
		Name:          "Azure Cosmos DB",
		Category:      CategoryDatabase,
		Description:   "Globally distributed, multi-model database service",
		UseCases:      []string{"IoT", "Gaming", "Retail", "Web and mobile applications"},
		SKUs:          []string{"Serverless", "Provisioned throughput", "Autoscale"},
		Features:      []string{"Multi-region replication", "Multiple consistency models", "Low latency"},
		Documentation: "https://learn.microsoft.com/azure/cosmos-db/",
	},
	"Azure Functions": {
		Name:          "Azure Functions",
		Category:      CategoryCompute,
		Description:   "Serverless compute service for event-driven applications",
		UseCases:      []string{"Event processing", "Real-time data processing", "Scheduled tasks"},
		SKUs:          []string{"Consumption", "Premium", "Dedicated"},
		Features:      []string{"Auto-scaling", "Pay per execution", "Multiple language support"},
		Documentation: "https://learn.microsoft.com/azure/azure-functions/",
	},
	"Azure Kubernetes Service": {
		Name:          "Azure Kubernetes Service",
		Category:      CategoryCompute,
		Description:   "Managed Kubernetes container orchestration service",
		UseCases:      []string{"Microservices", "Container orchestration", "DevOps"},
		SKUs:          []string{"Free tier", "Standard", "Premium"},
		Features:      []string{"Auto-scaling", "Integrated CI/CD", "Enterprise-grade security"},
		Documentation: "https://learn.microsoft.com/azure/aks/",
	},
	"Azure Storage": {
		Name:          "Azure Storage",
		Category:      CategoryStorage,
		Description:   "Scalable cloud storage for data, backups, and archives",
		UseCases:      []string{"File storage", "Blob storage", "Queue storage", "Table storage"},
		SKUs:          []string{"Standard", "Premium"},
		Features:      []string{"High durability", "Geo-replication", "Encryption at rest"},
		Documentation: "https://learn.microsoft.com/azure/storage/",
	},
	"Azure Front Door": {
		Name:          "Azure Front Door",
		Category:      CategoryNetworking,
		Description:   "Global load balancer and content delivery network",
		UseCases:      []string{"Global web applications", "API acceleration", "DDoS protection"},
		SKUs:          []string{"Standard", "Premium"},
		Features:      []string{"SSL offloading", "Web Application Firewall", "Smart routing"},
		Documentation: "https://learn.microsoft.com/azure/frontdoor/",
	},
	"Azure Application Insights": {
		Name:          "Azure Application Insights",
		Category:      CategoryMonitoring,
		Description:   "Application Performance Management service",
		UseCases:      []string{"Application monitoring", "Performance diagnostics", "Usage analytics"},
		SKUs:          []string{"Pay-as-you-go"},
		Features:      []string{"Live metrics", "Smart detection", "Distributed tracing"},
		Documentation: "https://learn.microsoft.com/azure/azure-monitor/app/app-insights-overview",
	},
	"Azure Virtual Machines": {
		Name:          "Azure Virtual Machines",
		Category:      CategoryCompute,
		Description:   "On-demand scalable computing resources",
		UseCases:      []string{"Custom applications", "Legacy applications", "Development/testing"},
		SKUs:          []string{"A-series", "B-series", "D-series", "E-series", "F-series", "N-series"},
		Features:      []string{"Multiple OS support", "Flexible sizing", "Reserved instances"},
		Documentation: "https://learn.microsoft.com/azure/virtual-machines/",
	},
	"Azure API Management": {
		Name:          "Azure API Management",
		Category:      CategoryIntegration,
		Description:   "Hybrid, multicloud management platform for APIs",
		UseCases:      []string{"API gateway", "API versioning", "API security"},
		SKUs:          []string{"Consumption", "Developer", "Basic", "Standard", "Premium"},
		Features:      []string{"Rate limiting", "Caching", "API analytics", "Developer portal"},
		Documentation: "https://learn.microsoft.com/azure/api-management/",
	},
}

// aliases maps common short names onto catalog keys.
var aliases = map[string]string{
	"app service":          "Azure App Service",
	"web app":              "Azure App Service",
	"sql database":         "Azure SQL Database",
	"azure sql":            "Azure SQL Database",
	"sql":                  "Azure SQL Database",
	"cosmos db":            "Azure Cosmos DB",
	"cosmosdb":             "Azure Cosmos DB",
	"functions":            "Azure Functions",
	"function app":         "Azure Functions",
	"aks":                  "Azure Kubernetes Service",
	"kubernetes":           "Azure Kubernetes Service",
	"storage":              "Azure Storage",
	"blob storage":         "Azure Storage",
	"storage account":      "Azure Storage",
	"front door":           "Azure Front Door",
	"app insights":         "Azure Application Insights",
	"application insights": "Azure Application Insights",
	"virtual machines":     "Azure Virtual Machines",
	"virtual machine":      "Azure Virtual Machines",
	"vm":                   "Azure Virtual Machines",
	"api management":       "Azure API Management",
	"apim":                 "Azure API Management",
}

var patterns = map[string]Pattern{
	"Web Application": {
		Name:        "Web Application",
		Description: "Standard web application pattern with managed platform services",
		Services:    []string{"Azure App Service", "Azure SQL Database", "Azure Storage", "Azure Application Insights"},
	},
	"Microservices": {
		Name:        "Microservices",
		Description: "Scalable microservices architecture with container orchestration",
		Services:    []string{"Azure Kubernetes Service", "Azure Cosmos DB", "Azure API Management", "Azure Front Door"},
	},
	"Serverless": {
		Name:        "Serverless",
		Description: "Event-driven serverless architecture for cost optimization",
		Services:    []string{"Azure Functions", "Azure Cosmos DB", "Azure Storage", "Azure API Management"},
	},
	"Enterprise Web Application": {
		Name:        "Enterprise Web Application",
		Description: "Enterprise-grade web application with global distribution",
		Services:    []string{"Azure App Service", "Azure SQL Database", "Azure Front Door", "Azure Application Insights"},
	},
}

// Lookup finds a catalog entry by exact or normalized name.
func Lookup(name string) (Entry, bool) {
	if entry, ok := entries[name]; ok {
		return entry, true
	}
	if canonical, ok := Normalize(name); ok {
		return entries[canonical], true
	}
	return Entry{}, false
}

// Normalize maps a free-form service name onto its catalog key.
func Normalize(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if _, ok := entries[trimmed]; ok {
		return trimmed, true
	}
	lower := strings.ToLower(trimmed)
	if canonical, ok := aliases[lower]; ok {
		return canonical, true
	}
	// Tolerate names like "Microsoft Azure App Service" or trailing tiers.
	for key := range entries {
		if strings.Contains(lower, strings.ToLower(key)) {
			return key, true
		}
	}
	return "", false
}

// Names returns all catalog service names, sorted stably by insertion-independent order.
func Names() []string {
	out := make([]string, 0, len(entries))
	for _, key := range []string{
		"Azure App Service",
		"Azure SQL Database",
		"Azure Cosmos DB",
		"Azure Functions",
		"Azure Kubernetes Service",
		"Azure Storage",
		"Azure Front Door",
		"Azure Application Insights",
		"Azure Virtual Machines",
		"Azure API Management",
	} {
		out = append(out, entries[key].Name)
	}
	return out
}

// Recommend suggests services by keyword-matching the requirement texts.
func Recommend(requirements []string) []string {
	text := strings.ToLower(strings.Join(requirements, " "))
	var out []string
	add := func(name string) {
		for _, existing := range out {
			if existing == name {
				return
			}
		}
		out = append(out, name)
	}

	if containsAny(text, "web", "website", "app", "application") {
		add("Azure App Service")
	}
	if containsAny(text, "database", "sql", "data") {
		if containsAny(text, "nosql", "document") {
			add("Azure Cosmos DB")
		} else {
			add("Azure SQL Database")
		}
	}
	if containsAny(text, "file", "blob", "storage", "backup") {
		add("Azure Storage")
	}
	if containsAny(text, "api", "rest") {
		add("Azure API Management")
	}
	if containsAny(text, "container", "kubernetes", "docker", "microservice") {
		add("Azure Kubernetes Service")
	}
	if containsAny(text, "serverless", "function", "event") {
		add("Azure Functions")
	}
	if containsAny(text, "global", "cdn", "worldwide", "distribution") {
		add("Azure Front Door")
	}
	// Monitoring is recommended for every workload.
	add("Azure Application Insights")
	return out
}

// SuggestPattern picks an architecture pattern from requirement keywords.
func SuggestPattern(requirements []string) Pattern {
	text := strings.ToLower(strings.Join(requirements, " "))
	switch {
	case containsAny(text, "microservice", "container"):
		return patterns["Microservices"]
	case containsAny(text, "serverless", "function"):
		return patterns["Serverless"]
	case containsAny(text, "enterprise", "global"):
		return patterns["Enterprise Web Application"]
	default:
		return patterns["Web Application"]
	}
}

// PatternByName returns a known architecture pattern.
func PatternByName(name string) (Pattern, bool) {
	pattern, ok := patterns[name]
	return pattern, ok
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

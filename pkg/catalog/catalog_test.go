package catalog

import "testing"

func TestLookupExact(t *testing.T) {
	entry, ok := Lookup("Azure App Service")
	if !ok {
		t.Fatal("Expected to find Azure App Service")
	}
	if entry.Category != CategoryCompute {
		t.Errorf("Expected compute category, got %s", entry.Category)
	}
	if len(entry.SKUs) == 0 {
		t.Error("Expected SKUs to be populated")
	}
}

func TestLookupAlias(t *testing.T) {
	cases := map[string]string{
		"AKS":                         "Azure Kubernetes Service",
		"app service":                 "Azure App Service",
		"Cosmos DB":                   "Azure Cosmos DB",
		"vm":                          "Azure Virtual Machines",
		"blob storage":                "Azure Storage",
		"Microsoft Azure App Service": "Azure App Service",
	}

	for input, expected := range cases {
		entry, ok := Lookup(input)
		if !ok {
			t.Errorf("Lookup(%q) found nothing", input)
			continue
		}
		if entry.Name != expected {
			t.Errorf("Lookup(%q) = %s, expected %s", input, entry.Name, expected)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("Contoso Quantum Service"); ok {
		t.Error("Expected unknown service to miss")
	}
}

func TestNormalizeUnknown(t *testing.T) {
	if _, ok := Normalize("Something Else Entirely"); ok {
		t.Error("Expected Normalize to fail for unknown name")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 10 {
		t.Errorf("Expected 10 catalog entries, got %d", len(names))
	}
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Names() returned %q which Lookup cannot find", name)
		}
	}
}

func TestRecommendWebsite(t *testing.T) {
	recommended := Recommend([]string{
		"Corporate website with a blog",
		"Contact form storing submissions in a database",
	})

	if !contains(recommended, "Azure App Service") {
		t.Errorf("Expected App Service recommendation, got %v", recommended)
	}
	if !contains(recommended, "Azure SQL Database") {
		t.Errorf("Expected SQL Database recommendation, got %v", recommended)
	}
	if !contains(recommended, "Azure Application Insights") {
		t.Error("Monitoring should always be recommended")
	}
}

func TestRecommendNoSQL(t *testing.T) {
	recommended := Recommend([]string{"Store document data in a nosql database"})
	if !contains(recommended, "Azure Cosmos DB") {
		t.Errorf("Expected Cosmos DB for nosql, got %v", recommended)
	}
	if contains(recommended, "Azure SQL Database") {
		t.Errorf("Did not expect SQL Database for nosql, got %v", recommended)
	}
}

func TestRecommendDeduplicates(t *testing.T) {
	recommended := Recommend([]string{"web app", "another web application", "web site"})
	seen := make(map[string]int)
	for _, name := range recommended {
		seen[name]++
	}
	for name, count := range seen {
		if count > 1 {
			t.Errorf("Service %s recommended %d times", name, count)
		}
	}
}

func TestSuggestPattern(t *testing.T) {
	cases := []struct {
		requirements []string
		expected     string
	}{
		{[]string{"containerized microservices"}, "Microservices"},
		{[]string{"serverless event processing"}, "Serverless"},
		{[]string{"enterprise global deployment"}, "Enterprise Web Application"},
		{[]string{"a simple website"}, "Web Application"},
	}

	for _, tc := range cases {
		pattern := SuggestPattern(tc.requirements)
		if pattern.Name != tc.expected {
			t.Errorf("SuggestPattern(%v) = %s, expected %s", tc.requirements, pattern.Name, tc.expected)
		}
		if len(pattern.Services) == 0 {
			t.Errorf("Pattern %s has no services", pattern.Name)
		}
	}
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

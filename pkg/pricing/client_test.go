package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func decimalFromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// failingSource simulates the retail client misbehaving in various ways.
type failingSource struct {
	err   error
	calls int
}

func (f *failingSource) GetPrice(ctx context.Context, serviceName, sku, region string) (*Quote, error) {
	f.calls++
	return nil, f.err
}

func (f *failingSource) Name() string { return "failing" }

func TestClientFallbackOnNoMatch(t *testing.T) {
	client := NewClient(&failingSource{err: ErrNoMatch}, NewFallbackTable())

	quote, err := client.GetPrice(context.Background(), "Azure App Service", "S1", "eastus")
	if err != nil {
		t.Fatalf("Client must never fail on a miss, got %v", err)
	}
	if !quote.Estimated() {
		t.Fatal("Expected a fallback quote")
	}
	if quote.FallbackReason != "no match in pricing API" {
		t.Errorf("Unexpected reason: %q", quote.FallbackReason)
	}
	if !quote.UnitPrice.IsPositive() {
		t.Errorf("Fallback must carry a positive estimate, got %s", quote.UnitPrice)
	}
}

func TestClientFallbackReasons(t *testing.T) {
	cases := []struct {
		err    error
		reason string
	}{
		{ErrNoMatch, "no match in pricing API"},
		{ErrAmbiguousSKU, "ambiguous SKU"},
		{context.DeadlineExceeded, "pricing API timed out"},
		{errors.New("connection refused"), "pricing API unreachable"},
	}

	for _, tc := range cases {
		client := NewClient(&failingSource{err: tc.err}, NewFallbackTable())
		quote, err := client.GetPrice(context.Background(), "Azure SQL Database", "Basic", "eastus")
		if err != nil {
			t.Fatalf("Unexpected error for %v: %v", tc.err, err)
		}
		if quote.FallbackReason != tc.reason {
			t.Errorf("For %v expected reason %q, got %q", tc.err, tc.reason, quote.FallbackReason)
		}
	}
}

func TestClientCachesLiveQuotes(t *testing.T) {
	source := &staticSource{quote: &Quote{
		ServiceName: "Azure App Service",
		SKU:         "S1",
		UnitPrice:   decimalFromFloat(0.10),
		Source:      SourceLive,
	}}
	client := NewClient(source, NewFallbackTable())

	for i := 0; i < 3; i++ {
		if _, err := client.GetPrice(context.Background(), "Azure App Service", "S1", "eastus"); err != nil {
			t.Fatalf("GetPrice failed: %v", err)
		}
	}
	if source.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", source.calls)
	}
}

func TestClientDoesNotCacheFallbacks(t *testing.T) {
	source := &failingSource{err: ErrNoMatch}
	client := NewClient(source, NewFallbackTable())

	for i := 0; i < 2; i++ {
		if _, err := client.GetPrice(context.Background(), "Azure App Service", "S1", "eastus"); err != nil {
			t.Fatalf("GetPrice failed: %v", err)
		}
	}
	if source.calls != 2 {
		t.Errorf("Fallbacks should not be cached; expected 2 upstream calls, got %d", source.calls)
	}
}

type staticSource struct {
	quote *Quote
	calls int
}

func (s *staticSource) GetPrice(ctx context.Context, serviceName, sku, region string) (*Quote, error) {
	s.calls++
	return s.quote, nil
}

func (s *staticSource) Name() string { return "static" }

func TestFallbackTableCategories(t *testing.T) {
	table := NewFallbackTable()

	compute := table.Estimate("Azure App Service", "S1", "eastus", "test")
	database := table.Estimate("Azure SQL Database", "Basic", "eastus", "test")
	unknown := table.Estimate("Contoso Quantum Service", "X1", "eastus", "test")

	if !database.UnitPrice.GreaterThan(compute.UnitPrice) {
		t.Errorf("Expected database rate above compute rate, got %s vs %s", database.UnitPrice, compute.UnitPrice)
	}
	if !unknown.UnitPrice.IsPositive() {
		t.Error("Unknown services must still get a positive estimate")
	}
	if unknown.FallbackReason == "" {
		t.Error("Fallback reason must not be empty")
	}
}

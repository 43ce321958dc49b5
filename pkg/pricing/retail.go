package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRetailURL is the public Azure Retail Prices endpoint. No auth.
const DefaultRetailURL = "https://prices.azure.com/api/retail/prices"

const retailAPIVersion = "2023-01-01-preview"

// maxRetailItems bounds how many records one query is allowed to consider.
const maxRetailItems = 100

type retailResponse struct {
	Items []retailItem `json:"Items"`
}

type retailItem struct {
	CurrencyCode  string  `json:"currencyCode"`
	RetailPrice   float64 `json:"retailPrice"`
	UnitPrice     float64 `json:"unitPrice"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	ServiceName   string  `json:"serviceName"`
	ProductName   string  `json:"productName"`
	SkuName       string  `json:"skuName"`
	ArmRegionName string  `json:"armRegionName"`
}

// RetailClient queries the Azure Retail Prices API. It reports misses as
// ErrNoMatch / ErrAmbiguousSKU so a Client can substitute an estimate.
type RetailClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRetailClient creates a client with a single bounded timeout per call.
func NewRetailClient(baseURL string, timeout time.Duration) *RetailClient {
	if baseURL == "" {
		baseURL = DefaultRetailURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RetailClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RetailClient) Name() string {
	return "azure-retail"
}

// GetPrice fetches consumption prices for the service in the region and
// picks the best match for the SKU: exact SKU name first, then partial
// matches, lowest unit price within each class.
func (c *RetailClient) GetPrice(ctx context.Context, serviceName, sku, region string) (*Quote, error) {
	items, err := c.search(ctx, serviceName, region)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s %s in %s: %w", serviceName, sku, region, ErrNoMatch)
	}

	best := selectItem(items, sku)
	if best == nil {
		// The service matched but nothing resembles the requested SKU.
		return nil, fmt.Errorf("%s %s in %s: %w", serviceName, sku, region, ErrAmbiguousSKU)
	}

	price := best.RetailPrice
	if price == 0 {
		price = best.UnitPrice
	}
	currency := best.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	return &Quote{
		ServiceName:   serviceName,
		SKU:           best.SkuName,
		Region:        region,
		UnitPrice:     decimal.NewFromFloat(price),
		Currency:      currency,
		UnitOfMeasure: best.UnitOfMeasure,
		ProductName:   best.ProductName,
		Source:        SourceLive,
		RetrievedAt:   time.Now(),
	}, nil
}

func (c *RetailClient) search(ctx context.Context, serviceName, region string) ([]retailItem, error) {
	filters := []string{
		fmt.Sprintf("serviceName eq '%s'", serviceName),
		"priceType eq 'Consumption'",
		"currencyCode eq 'USD'",
	}
	if region != "" {
		filters = append(filters, fmt.Sprintf("armRegionName eq '%s'", region))
	}

	params := url.Values{}
	params.Set("$filter", strings.Join(filters, " and "))
	params.Set("api-version", retailAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retail prices API returned status %d", resp.StatusCode)
	}

	var priceResp retailResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, fmt.Errorf("decode retail prices response: %w", err)
	}

	items := priceResp.Items
	if len(items) > maxRetailItems {
		items = items[:maxRetailItems]
	}
	// Records with no price at all cannot be used for estimation.
	usable := items[:0]
	for _, item := range items {
		if item.RetailPrice > 0 || item.UnitPrice > 0 {
			usable = append(usable, item)
		}
	}
	return usable, nil
}

// selectItem implements the match preference: exact SKU name beats partial
// match, lowest price breaks ties. With an empty SKU everything matches.
func selectItem(items []retailItem, sku string) *retailItem {
	var exact, partial *retailItem
	skuLower := strings.ToLower(sku)

	for i := range items {
		item := &items[i]
		itemSKU := strings.ToLower(item.SkuName)
		switch {
		case skuLower != "" && itemSKU == skuLower:
			if exact == nil || itemPrice(item) < itemPrice(exact) {
				exact = item
			}
		case skuLower == "" || strings.Contains(itemSKU, skuLower):
			if partial == nil || itemPrice(item) < itemPrice(partial) {
				partial = item
			}
		}
	}

	if exact != nil {
		return exact
	}
	return partial
}

func itemPrice(item *retailItem) float64 {
	if item.RetailPrice > 0 {
		return item.RetailPrice
	}
	return item.UnitPrice
}

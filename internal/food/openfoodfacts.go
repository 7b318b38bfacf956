// ABOUTME: Open Food Facts HTTP client used as the remote fact source.
// ABOUTME: Maps per-100g nutriments from the search API to FoodNutritionFact.
package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitdiary/internal/models"
)

const (
	// DefaultBaseURL is the public Open Food Facts server.
	DefaultBaseURL = "https://world.openfoodfacts.org"
	// SourceOpenFoodFacts marks facts fetched from Open Food Facts.
	SourceOpenFoodFacts = "openfoodfacts"

	defaultUserAgent = "fitdiary/1.0 (+https://github.com/harperreed/fitdiary)"
)

// ErrNoProduct is returned when the remote search finds nothing usable.
var ErrNoProduct = errors.New("no product found")

// Client queries the Open Food Facts search API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Search returns up to limit products matching query as per-100g facts.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.FoodNutritionFact, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	agent := c.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	if limit <= 0 {
		limit = 10
	}

	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		base,
		url.QueryEscape(strings.TrimSpace(query)),
		limit,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", agent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts response: %w", err)
	}

	out := make([]models.FoodNutritionFact, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		out = append(out, models.FoodNutritionFact{
			Name:     name,
			Calories: per100g(p.Nutriments, "energy-kcal"),
			Protein:  per100g(p.Nutriments, "proteins"),
			Carbs:    per100g(p.Nutriments, "carbohydrates"),
			Fat:      per100g(p.Nutriments, "fat"),
			Fiber:    per100g(p.Nutriments, "fiber"),
			Sugar:    per100g(p.Nutriments, "sugars"),
			Sodium:   per100g(p.Nutriments, "sodium") * 1000,
			Category: firstCategory(p.Categories),
			Source:   SourceOpenFoodFacts,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("openfoodfacts %q: %w", query, ErrNoProduct)
	}
	return out, nil
}

func per100g(n map[string]any, base string) float64 {
	if v, ok := parseFloatAny(n[base+"_100g"]); ok {
		return v
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func firstCategory(categories string) string {
	first, _, _ := strings.Cut(categories, ",")
	return strings.ToLower(strings.TrimSpace(first))
}

type offProduct struct {
	ProductName string         `json:"product_name"`
	Categories  string         `json:"categories"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

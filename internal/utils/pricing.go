package utils

import (
	"math"
	"strconv"
	"strings"

	"carbook/internal/domain"
)

// Quote provides the display breakdown of an estimated booking total.
// The backend's final_price remains authoritative; a Quote is an estimate
// for pre-submission display only.
type Quote struct {
	Base   float64 `json:"base"`
	Tax    float64 `json:"tax"`
	Extras float64 `json:"extras"`
	Total  float64 `json:"total"`
}

// ParseAmount coerces a price value from the API into a float64.
// The backend sometimes sends prices as strings; anything unparseable
// counts as 0.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Round2 rounds a monetary amount to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeQuote calculates the payable total for a booking:
// base daily price + fixed tax + the price of every selected extra.
// Extra ids not present in the catalog are ignored. The result is never
// negative and never an error.
func ComputeQuote(basePrice any, extraIDs []string, catalog map[string]domain.ExtraOption, tax float64) Quote {
	base := ParseAmount(basePrice)
	if base < 0 {
		base = 0
	}

	var extras float64
	for _, id := range extraIDs {
		if opt, ok := catalog[id]; ok {
			extras += opt.Price
		}
	}

	total := base + tax + extras
	if total < 0 {
		total = 0
	}

	return Quote{
		Base:   Round2(base),
		Tax:    Round2(tax),
		Extras: Round2(extras),
		Total:  Round2(total),
	}
}

// ComputeTotal returns just the payable total.
func ComputeTotal(basePrice any, extraIDs []string, catalog map[string]domain.ExtraOption, tax float64) float64 {
	return ComputeQuote(basePrice, extraIDs, catalog, tax).Total
}

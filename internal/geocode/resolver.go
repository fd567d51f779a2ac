// Package geocode resolves map coordinates into place names through a
// reverse-geocoding service, caching results in durable storage.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"carbook/internal/logger"
	"carbook/internal/store"
)

// UnknownLocation is returned whenever a coordinate cannot be resolved.
// Resolution never fails hard; callers always get a usable string.
const UnknownLocation = "unknown location"

// placeTypePreference orders the geocoder's component categories from most to
// least specific; the first category present names the place.
var placeTypePreference = []string{
	"village",
	"hamlet",
	"suburb",
	"town",
	"city",
	"neighbourhood",
	"road",
	"street",
	"footway",
	"county",
}

// Resolver reverse-geocodes coordinates with a durable per-coordinate cache.
type Resolver struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
	store    store.Store
}

// NewResolver builds a resolver against the given geocoding service. The
// request language follows the persisted selectedLanguage slot, falling back
// to the configured default.
func NewResolver(baseURL, apiKey, language string, timeout time.Duration, st store.Store) *Resolver {
	return &Resolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		http:     &http.Client{Timeout: timeout},
		store:    st,
	}
}

// Resolve returns a human-readable place name for the coordinate. Invalid
// coordinates and any service failure yield UnknownLocation; the cache is
// consulted before the service and updated after a successful lookup.
func (r *Resolver) Resolve(ctx context.Context, lat, lng float64) string {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return UnknownLocation
	}

	// stabilize cache keys and service queries against floating-point jitter
	lat = round6(lat)
	lng = round6(lng)

	key := cacheKey(lat, lng)
	if cached, err := r.store.Get(key); err == nil && cached != "" {
		return cached
	}

	name, err := r.lookup(ctx, lat, lng)
	if err != nil {
		logger.Error("reverse geocoding failed", "lat", lat, "lng", lng, "error", err)
		return UnknownLocation
	}
	if name == UnknownLocation {
		return name
	}

	if err := r.store.Set(key, name); err != nil {
		logger.Warn("failed to cache geocoding result", "key", key, "error", err)
	}
	return name
}

func (r *Resolver) lookup(ctx context.Context, lat, lng float64) (string, error) {
	query := url.Values{
		"q":              {formatCoord(lat) + "," + formatCoord(lng)},
		"key":            {r.apiKey},
		"language":       {r.requestLanguage()},
		"no_annotations": {"1"},
		"limit":          {"1"},
	}

	endpoint := r.baseURL + "/geocode/v1/json?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	logger.ExternalServiceCall("geocoder", "reverse", "lat", lat, "lng", lng)
	resp, err := r.http.Do(req)
	logger.ExternalServiceResult("geocoder", "reverse", err)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Components map[string]any `json:"components"`
			Formatted  string         `json:"formatted"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return UnknownLocation, nil
	}
	return pickName(payload.Results[0].Components, payload.Results[0].Formatted), nil
}

func (r *Resolver) requestLanguage() string {
	if lang, err := r.store.Get(store.KeyLanguage); err == nil && lang != "" {
		return lang
	}
	return r.language
}

// pickName extracts the most specific applicable place label, falling back to
// the first comma-separated segment of the formatted address.
func pickName(components map[string]any, formatted string) string {
	for _, category := range placeTypePreference {
		if v, ok := components[category].(string); ok && v != "" {
			return v
		}
	}
	if segment := strings.TrimSpace(strings.SplitN(formatted, ",", 2)[0]); segment != "" {
		return segment
	}
	return UnknownLocation
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cacheKey(lat, lng float64) string {
	return store.GeocodeCachePrefix + formatCoord(lat) + "_" + formatCoord(lng)
}

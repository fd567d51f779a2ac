package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbook/internal/store"
)

type geocodeResult struct {
	Components map[string]any `json:"components"`
	Formatted  string         `json:"formatted"`
}

func geocodeServer(t *testing.T, calls *int, results []geocodeResult) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/geocode/v1/json", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("no_annotations"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
}

func newTestResolver(serverURL string, st store.Store) *Resolver {
	return NewResolver(serverURL, "test-key", "en", 5*time.Second, st)
}

func TestResolve(t *testing.T) {
	t.Run("picks the most specific component", func(t *testing.T) {
		calls := 0
		server := geocodeServer(t, &calls, []geocodeResult{{
			Components: map[string]any{"city": "Riyadh", "suburb": "Al Olaya", "county": "Riyadh Province"},
			Formatted:  "Al Olaya, Riyadh, Saudi Arabia",
		}})
		defer server.Close()

		resolver := newTestResolver(server.URL, store.NewMemoryStore())
		name := resolver.Resolve(context.Background(), 24.7136, 46.6753)

		assert.Equal(t, "Al Olaya", name)
		assert.Equal(t, 1, calls)
	})

	t.Run("falls back to the formatted address", func(t *testing.T) {
		calls := 0
		server := geocodeServer(t, &calls, []geocodeResult{{
			Components: map[string]any{"country": "Saudi Arabia"},
			Formatted:  "King Fahd Rd, Riyadh, Saudi Arabia",
		}})
		defer server.Close()

		resolver := newTestResolver(server.URL, store.NewMemoryStore())
		assert.Equal(t, "King Fahd Rd", resolver.Resolve(context.Background(), 24.7136, 46.6753))
	})

	t.Run("caches successful lookups", func(t *testing.T) {
		calls := 0
		server := geocodeServer(t, &calls, []geocodeResult{{
			Components: map[string]any{"city": "Riyadh"},
		}})
		defer server.Close()

		st := store.NewMemoryStore()
		resolver := newTestResolver(server.URL, st)

		assert.Equal(t, "Riyadh", resolver.Resolve(context.Background(), 24.7136, 46.6753))
		assert.Equal(t, "Riyadh", resolver.Resolve(context.Background(), 24.7136, 46.6753))
		assert.Equal(t, 1, calls)

		cached, err := st.Get("location_24.7136_46.6753")
		require.NoError(t, err)
		assert.Equal(t, "Riyadh", cached)
	})

	t.Run("coordinates are rounded before caching", func(t *testing.T) {
		calls := 0
		server := geocodeServer(t, &calls, []geocodeResult{{
			Components: map[string]any{"city": "Riyadh"},
		}})
		defer server.Close()

		st := store.NewMemoryStore()
		resolver := newTestResolver(server.URL, st)

		resolver.Resolve(context.Background(), 24.71360000001, 46.67529999999)

		_, err := st.Get("location_24.7136_46.6753")
		assert.NoError(t, err)
	})

	t.Run("invalid coordinates never reach the service", func(t *testing.T) {
		calls := 0
		server := geocodeServer(t, &calls, nil)
		defer server.Close()

		resolver := newTestResolver(server.URL, store.NewMemoryStore())

		assert.Equal(t, UnknownLocation, resolver.Resolve(context.Background(), 91, 46.6753))
		assert.Equal(t, UnknownLocation, resolver.Resolve(context.Background(), 24.7136, -181))
		assert.Equal(t, 0, calls)
	})

	t.Run("empty result set is not cached", func(t *testing.T) {
		calls := 0
		server := geocodeServer(t, &calls, []geocodeResult{})
		defer server.Close()

		st := store.NewMemoryStore()
		resolver := newTestResolver(server.URL, st)

		assert.Equal(t, UnknownLocation, resolver.Resolve(context.Background(), 24.7136, 46.6753))
		assert.Equal(t, UnknownLocation, resolver.Resolve(context.Background(), 24.7136, 46.6753))
		assert.Equal(t, 2, calls)

		keys, err := st.Keys(store.GeocodeCachePrefix)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("service failure yields the sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		resolver := newTestResolver(server.URL, store.NewMemoryStore())
		assert.Equal(t, UnknownLocation, resolver.Resolve(context.Background(), 24.7136, 46.6753))
	})

	t.Run("request language follows the stored selection", func(t *testing.T) {
		var gotLanguage string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLanguage = r.URL.Query().Get("language")
			json.NewEncoder(w).Encode(map[string]any{"results": []geocodeResult{{Components: map[string]any{"city": "Riyadh"}}}})
		}))
		defer server.Close()

		st := store.NewMemoryStore()
		require.NoError(t, st.Set(store.KeyLanguage, "ar"))

		resolver := newTestResolver(server.URL, st)
		resolver.Resolve(context.Background(), 24.7136, 46.6753)

		assert.Equal(t, "ar", gotLanguage)
	})
}

func TestPickName(t *testing.T) {
	t.Run("village beats city", func(t *testing.T) {
		name := pickName(map[string]any{"village": "Ad Diriyah", "city": "Riyadh"}, "")
		assert.Equal(t, "Ad Diriyah", name)
	})

	t.Run("non-string components are skipped", func(t *testing.T) {
		name := pickName(map[string]any{"city": 42, "county": "Riyadh Province"}, "")
		assert.Equal(t, "Riyadh Province", name)
	})

	t.Run("everything empty yields the sentinel", func(t *testing.T) {
		assert.Equal(t, UnknownLocation, pickName(map[string]any{}, "  "))
	})
}

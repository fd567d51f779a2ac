package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("values survive a reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")

		fs, err := OpenFileStore(path)
		require.NoError(t, err)
		require.NoError(t, fs.Set(KeyUserToken, "abc123"))
		require.NoError(t, fs.Set(KeyLanguage, "ar"))

		reopened, err := OpenFileStore(path)
		require.NoError(t, err)

		token, err := reopened.Get(KeyUserToken)
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)

		lang, err := reopened.Get(KeyLanguage)
		require.NoError(t, err)
		assert.Equal(t, "ar", lang)
	})

	t.Run("missing key", func(t *testing.T) {
		fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
		require.NoError(t, err)

		_, err = fs.Get("nope")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = fs.ModifiedAt("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("overwrite replaces the value", func(t *testing.T) {
		fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
		require.NoError(t, err)

		require.NoError(t, fs.Set(KeyPendingBooking, "first"))
		require.NoError(t, fs.Set(KeyPendingBooking, "second"))

		value, err := fs.Get(KeyPendingBooking)
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("deleting an absent key is not an error", func(t *testing.T) {
		fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
		require.NoError(t, err)

		assert.NoError(t, fs.Delete("nope"))
	})

	t.Run("delete removes the value durably", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		fs, err := OpenFileStore(path)
		require.NoError(t, err)

		require.NoError(t, fs.Set(KeyUser, `{"id":"42"}`))
		require.NoError(t, fs.Delete(KeyUser))

		reopened, err := OpenFileStore(path)
		require.NoError(t, err)
		_, err = reopened.Get(KeyUser)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("keys filters by prefix", func(t *testing.T) {
		fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
		require.NoError(t, err)

		require.NoError(t, fs.Set(GeocodeCachePrefix+"24.7136_46.6753", "Riyadh"))
		require.NoError(t, fs.Set(GeocodeCachePrefix+"21.4858_39.1925", "Jeddah"))
		require.NoError(t, fs.Set(KeyUserToken, "abc123"))

		keys, err := fs.Keys(GeocodeCachePrefix)
		require.NoError(t, err)
		assert.Equal(t, []string{
			GeocodeCachePrefix + "21.4858_39.1925",
			GeocodeCachePrefix + "24.7136_46.6753",
		}, keys)
	})

	t.Run("modification time tracks writes", func(t *testing.T) {
		fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
		require.NoError(t, err)

		require.NoError(t, fs.Set(KeyPendingBooking, "{}"))
		modified, err := fs.ModifiedAt(KeyPendingBooking)
		require.NoError(t, err)
		assert.False(t, modified.IsZero())
	})
}

func TestJSONHelpers(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	st := NewMemoryStore()
	require.NoError(t, SetJSON(st, KeyUser, payload{Name: "Sara"}))

	var got payload
	require.NoError(t, GetJSON(st, KeyUser, &got))
	assert.Equal(t, "Sara", got.Name)

	var missing payload
	assert.ErrorIs(t, GetJSON(st, "nope", &missing), ErrNotFound)
}

// Package store provides the client's durable key-value storage: auth tokens,
// the serialized user identity, the deferred booking slot, the last drop-off
// location, the language selection and the geocoding cache.
package store

import (
	"encoding/json"
	"errors"
	"time"
)

// Well-known keys. Names are preserved from the site's persisted schema,
// including the historical "tokenAdman" spelling.
const (
	KeyUserToken       = "tokenUser"
	KeyAdminToken      = "tokenAdman"
	KeyUser            = "user"
	KeyPendingBooking  = "tempBookingData"
	KeyDropoffLocation = "dropoffLocation"
	KeyLanguage        = "selectedLanguage"

	// GeocodeCachePrefix namespaces reverse-geocoding cache entries; the full
	// key is location_{lat}_{lng} with coordinates rounded to 6 decimals.
	GeocodeCachePrefix = "location_"
)

var ErrNotFound = errors.New("store: key not found")

// Store is durable client-side key-value storage. Implementations are safe
// for concurrent use. KeyPendingBooking is a single slot: writing a second
// deferred booking overwrites the first.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)

	// Set writes the value for key, creating or overwriting it.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists every stored key with the given prefix.
	Keys(prefix string) ([]string, error)

	// ModifiedAt returns when key was last written, or ErrNotFound.
	ModifiedAt(key string) (time.Time, error)
}

// GetJSON reads and unmarshals a stored JSON value.
func GetJSON(s Store, key string, v any) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

// SetJSON marshals and stores a JSON value.
func SetJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(raw))
}

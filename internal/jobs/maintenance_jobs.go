package jobs

import (
	"time"

	"carbook/internal/logger"
	"carbook/internal/store"
)

// PruneGeocodeCache removes reverse-geocoding cache entries older than the
// configured maximum age.
func (jr *JobRunner) PruneGeocodeCache() {
	jr.runWithRecovery("PruneGeocodeCache", func() {
		maxAge := time.Duration(jr.config.Storage.GeocodeCacheMaxAgeDays) * 24 * time.Hour
		cutoff := time.Now().Add(-maxAge)

		keys, err := jr.store.Keys(store.GeocodeCachePrefix)
		if err != nil {
			logger.Error("Failed to list geocode cache keys", "error", err)
			return
		}

		pruned := 0
		for _, key := range keys {
			modified, err := jr.store.ModifiedAt(key)
			if err != nil {
				continue
			}
			if modified.Before(cutoff) {
				if err := jr.store.Delete(key); err != nil {
					logger.Error("Failed to prune geocode cache entry", "key", key, "error", err)
					continue
				}
				pruned++
			}
		}

		logger.Info("Geocode cache pruned", "scanned", len(keys), "pruned", pruned)
	})
}

// ExpirePendingBooking discards a deferred booking that was never replayed
// within the configured window. Its dates would fail validation on replay.
func (jr *JobRunner) ExpirePendingBooking() {
	jr.runWithRecovery("ExpirePendingBooking", func() {
		maxAge := time.Duration(jr.config.Storage.PendingBookingMaxAgeHours) * time.Hour

		modified, err := jr.store.ModifiedAt(store.KeyPendingBooking)
		if err != nil {
			// nothing pending
			return
		}
		if time.Since(modified) < maxAge {
			return
		}

		if err := jr.store.Delete(store.KeyPendingBooking); err != nil {
			logger.Error("Failed to expire deferred booking", "error", err)
			return
		}
		logger.Warn("Expired a deferred booking that was never replayed", "deferred_at", modified)
	})
}

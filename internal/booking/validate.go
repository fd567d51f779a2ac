package booking

import (
	"strings"
	"time"

	"carbook/internal/domain"
)

// MinRentalDuration is the shortest bookable window. A window of exactly this
// length is valid.
const MinRentalDuration = 4 * time.Hour

// referenceDate anchors time-only parsing when a date is missing, so the
// window rules still run and their messages accumulate with the missing-date
// message instead of replacing it.
const referenceDate = "2000-01-01"

// Validate checks the user-editable fields of an intent and returns every
// violated rule as a user-facing message, in rule order. A nil result means
// the intent is valid.
func Validate(intent *domain.BookingIntent) []string {
	var errs []string

	if intent.PickupDate == "" || intent.DropoffDate == "" {
		errs = append(errs, "Please select both a pickup date and a drop-off date.")
	}
	if intent.PickupTime == "" || intent.DropoffTime == "" {
		errs = append(errs, "Please select both a pickup time and a drop-off time.")
	}
	if intent.HasExtra(domain.ExtraAdditionalDriver) &&
		(intent.Dropoff == nil || strings.TrimSpace(intent.Dropoff.Name) == "") {
		errs = append(errs, "Please choose a drop-off location for the additional driver.")
	}

	start, okStart := combine(intent.PickupDate, intent.PickupTime)
	end, okEnd := combine(intent.DropoffDate, intent.DropoffTime)
	if okStart && okEnd {
		// ordering and duration are independent checks; both may fire
		if !start.Before(end) {
			errs = append(errs, "The pickup time must be earlier than the drop-off time.")
		}
		if end.Sub(start) < MinRentalDuration {
			errs = append(errs, "The rental period must be at least 4 hours.")
		}
	}

	return errs
}

// combine parses date+time as a local wall-clock value. No timezone
// normalization is applied; bookings spanning a DST transition inherit that
// limitation.
func combine(date, tm string) (time.Time, bool) {
	if tm == "" {
		return time.Time{}, false
	}
	if date == "" {
		date = referenceDate
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, date+" "+tm, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

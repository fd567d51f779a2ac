package booking

import (
	"time"

	"github.com/google/uuid"

	"carbook/internal/api"
	"carbook/internal/domain"
)

// NewIntent opens a booking form for a car. The pickup location is the fixed
// branch; everything else is filled in as the user edits the form.
func NewIntent(car *domain.CarOffering) *domain.BookingIntent {
	return &domain.BookingIntent{
		ID:         uuid.NewString(),
		CarID:      car.ID,
		CarName:    car.Name,
		DailyPrice: car.DailyPrice,
		Pickup:     domain.PickupLocation,
		CreatedOn:  time.Now(),
	}
}

// BuildPayload converts an intent into the persistence payload. The drop-off
// location travels only when the additional-driver extra is selected. A
// temporary location travels by place name and coordinates instead of id so
// the backend can create or attach it as needed.
func BuildPayload(intent *domain.BookingIntent) api.BookingPayload {
	payload := api.BookingPayload{
		PickupDate:       intent.PickupDate,
		PickupTime:       intent.PickupTime,
		DropoffDate:      intent.DropoffDate,
		DropoffTime:      intent.DropoffTime,
		Extras:           intent.Extras,
		AdditionalDriver: intent.HasExtra(domain.ExtraAdditionalDriver),
		PickupLocation:   intent.Pickup.Name,
		UserID:           intent.UserID,
		EstimatedTotal:   intent.EstimatedTotal,
	}

	if payload.AdditionalDriver && intent.Dropoff != nil {
		payload.DropoffLocationName = intent.Dropoff.Name
		lat, lng := intent.Dropoff.Lat, intent.Dropoff.Lng
		payload.DropoffLat = &lat
		payload.DropoffLng = &lng
		if !intent.Dropoff.Temporary {
			payload.DropoffLocationID = intent.Dropoff.ID
		}
	}

	return payload
}

package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// BookingIntent is the in-progress, not-yet-persisted reservation the user is
// constructing. It is created when the booking form opens, mutated as fields
// are edited, and either submitted or serialized to durable storage when
// sign-in is required mid-flow.
type BookingIntent struct {
	ID             string    `json:"id"`
	CarID          string    `json:"car_id"`
	CarName        string    `json:"car_name"`
	DailyPrice     float64   `json:"daily_price"`
	PickupDate     string    `json:"pickup_date"` // yyyy-mm-dd
	PickupTime     string    `json:"pickup_time"` // HH:MM
	DropoffDate    string    `json:"dropoff_date"`
	DropoffTime    string    `json:"dropoff_time"`
	Extras         []string  `json:"extras"`
	Pickup         Location  `json:"pickup"`
	Dropoff        *Location `json:"dropoff,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	EstimatedTotal float64   `json:"estimated_total"`
	CreatedOn      time.Time `json:"created_on"`
}

// HasExtra reports whether the given add-on is selected.
func (i *BookingIntent) HasExtra(id string) bool {
	for _, e := range i.Extras {
		if e == id {
			return true
		}
	}
	return false
}

// Booking is a persisted reservation owned by the backend. The client treats
// it as opaque beyond display fields. FinalPrice is authoritative; any
// client-side total is an estimate only.
type Booking struct {
	ID         string        `json:"id"`
	Status     BookingStatus `json:"status"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	FinalPrice float64       `json:"final_price"`
	CarName    string        `json:"car_name"`
	ModelName  string        `json:"model_name"`
	BrandName  string        `json:"brand_name"`
	TypeName   string        `json:"type_name"`
}

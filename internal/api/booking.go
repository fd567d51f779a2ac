package api

import (
	"context"
	"net/http"
	"net/url"

	"carbook/internal/domain"
)

// BookingPayload is the persistence payload for creating a booking. Drop-off
// fields are present only when the additional-driver extra is selected, and a
// temporary location never travels by id.
type BookingPayload struct {
	PickupDate          string   `json:"pickup_date"`
	PickupTime          string   `json:"pickup_time"`
	DropoffDate         string   `json:"dropoff_date"`
	DropoffTime         string   `json:"dropoff_time"`
	Extras              []string `json:"extras"`
	AdditionalDriver    bool     `json:"additional_driver"`
	PickupLocation      string   `json:"pickup_location"`
	DropoffLocationID   string   `json:"dropoff_location_id,omitempty"`
	DropoffLocationName string   `json:"dropoff_location_name,omitempty"`
	DropoffLat          *float64 `json:"dropoff_lat,omitempty"`
	DropoffLng          *float64 `json:"dropoff_lng,omitempty"`
	UserID              string   `json:"user_id,omitempty"`
	EstimatedTotal      float64  `json:"estimated_total"`
}

// CreateBooking persists a booking for the given car. The returned booking's
// FinalPrice comes from the backend and is authoritative.
func (c *Client) CreateBooking(ctx context.Context, carID string, payload BookingPayload) (*domain.Booking, error) {
	var doc resourceDoc
	path := "/api/user/Model/" + url.PathEscape(carID) + "/car-booking"
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	booking := bookingFromObject(decodeOne(doc))
	return &booking, nil
}

// RecordPaymentMethod records the payment method chosen for a booking.
func (c *Client) RecordPaymentMethod(ctx context.Context, carID, bookingID, method string) error {
	path := "/api/user/Model/" + url.PathEscape(carID) + "/car-booking/" + url.PathEscape(bookingID) + "/payment-method"
	body := map[string]string{"payment_method": method}
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// ListBookings fetches the signed-in user's bookings.
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodGet, "/api/user/booking-list", nil, nil, &doc); err != nil {
		return nil, err
	}

	objects := decodeMany(doc)
	bookings := make([]domain.Booking, 0, len(objects))
	for i := range objects {
		bookings = append(bookings, bookingFromObject(&objects[i]))
	}
	return bookings, nil
}

func bookingFromObject(obj *resourceObject) domain.Booking {
	b := domain.Booking{
		ID:         obj.id(),
		Status:     domain.BookingStatus(obj.str("status")),
		StartDate:  obj.str("start_date"),
		EndDate:    obj.str("end_date"),
		FinalPrice: obj.num("final_price"),
		CarName:    obj.rel("car").str("name"),
		ModelName:  obj.rel("model").str("name"),
		BrandName:  obj.rel("brand").str("name"),
		TypeName:   obj.rel("type").str("name"),
	}
	if b.CarName == "" {
		b.CarName = obj.str("car_name")
	}
	if b.ModelName == "" {
		b.ModelName = obj.str("model_name")
	}
	if b.BrandName == "" {
		b.BrandName = obj.str("brand_name")
	}
	if b.TypeName == "" {
		b.TypeName = obj.str("type_name")
	}
	return b
}

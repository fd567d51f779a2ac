package domain

// Location is a named place with coordinates. Permanent locations carry a
// durable id reusable in later bookings; temporary ones exist only for the
// submission that created them and must never be referenced by id.
type Location struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Active    bool    `json:"active"`
	Temporary bool    `json:"temporary"`
}

// PickupLocation is the fixed branch every rental starts from.
var PickupLocation = Location{
	Name:   "Main Branch",
	Lat:    24.7136,
	Lng:    46.6753,
	Active: true,
}

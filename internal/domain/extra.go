package domain

// ExtraOption is a selectable booking add-on with a fixed price.
type ExtraOption struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

const (
	ExtraAdditionalDriver = "additional_driver"
	ExtraChildSeat        = "child_seat"
	ExtraFullInsurance    = "full_insurance"
)

// BookingTax is the fixed tax added to every booking total.
const BookingTax float64 = 50

// ExtrasCatalog is the fixed set of bookable add-ons, keyed by id.
// The set is constant for the application's runtime.
var ExtrasCatalog = map[string]ExtraOption{
	ExtraAdditionalDriver: {ID: ExtraAdditionalDriver, Label: "Additional Driver", Price: 55},
	ExtraChildSeat:        {ID: ExtraChildSeat, Label: "Child Seat", Price: 25},
	ExtraFullInsurance:    {ID: ExtraFullInsurance, Label: "Full Insurance", Price: 40},
}

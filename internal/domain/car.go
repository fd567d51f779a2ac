package domain

// CarOffering is a rentable vehicle listing. It is immutable on the client
// side and sourced entirely from the backend per request.
type CarOffering struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	BrandID      string  `json:"brand_id"`
	BrandName    string  `json:"brand_name"`
	TypeName     string  `json:"type_name"`
	DailyPrice   float64 `json:"daily_price"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuel_type"`
	ImageURL     string  `json:"image_url"`
}

// Brand is a car manufacturer entry in the filter sidebar.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CarType is a vehicle category entry in the filter sidebar.
type CarType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterInfo is the metadata backing the filter sidebar. The sidebar is only
// rendered once all of it is known; partial filter state would be misleading.
type FilterInfo struct {
	Brands   []Brand   `json:"brands"`
	Types    []CarType `json:"types"`
	MinPrice float64   `json:"min_price"`
	MaxPrice float64   `json:"max_price"`
}

// Pagination describes one page of a listing response.
type Pagination struct {
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"carbook/internal/domain"
)

// CarFilter mirrors the filter sidebar selections sent with a listing request.
type CarFilter struct {
	BrandIDs []string `json:"brand_ids,omitempty"`
	TypeIDs  []string `json:"type_ids,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

// ListCars fetches one page of the car catalog, filtered.
func (c *Client) ListCars(ctx context.Context, filter CarFilter, page int) ([]domain.CarOffering, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{"page": {strconv.Itoa(page)}}

	var doc resourceDoc
	if err := c.do(ctx, http.MethodPost, "/api/user/Home", query, filter, &doc); err != nil {
		return nil, domain.Pagination{}, err
	}

	objects := decodeMany(doc)
	cars := make([]domain.CarOffering, 0, len(objects))
	for i := range objects {
		cars = append(cars, carFromObject(&objects[i]))
	}

	pagination := domain.Pagination{
		Page:     doc.metaInt("current_page", page),
		PerPage:  doc.metaInt("per_page", len(cars)),
		Total:    doc.metaInt("total", len(cars)),
		LastPage: doc.metaInt("last_page", page),
	}
	return cars, pagination, nil
}

// FilterInfo fetches the filter sidebar metadata: brands, types and the price
// bounds of the catalog.
func (c *Client) FilterInfo(ctx context.Context) (*domain.FilterInfo, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodGet, "/api/user/filter-Info", nil, nil, &doc); err != nil {
		return nil, err
	}

	obj := decodeOne(doc)
	info := &domain.FilterInfo{
		MinPrice: obj.num("min_price"),
		MaxPrice: obj.num("max_price"),
	}
	for _, m := range obj.objects("brands") {
		info.Brands = append(info.Brands, domain.Brand{
			ID:   idFromValue(m["id"]),
			Name: strFromValue(m["name"]),
		})
	}
	for _, m := range obj.objects("types") {
		info.Types = append(info.Types, domain.CarType{
			ID:   idFromValue(m["id"]),
			Name: strFromValue(m["name"]),
		})
	}
	return info, nil
}

// CarDetail fetches a single car offering.
func (c *Client) CarDetail(ctx context.Context, id string) (*domain.CarOffering, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodGet, "/api/user/Model/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		return nil, err
	}
	car := carFromObject(decodeOne(doc))
	if car.ID == "" {
		car.ID = id
	}
	return &car, nil
}

func carFromObject(obj *resourceObject) domain.CarOffering {
	brand := obj.rel("brand")
	carType := obj.rel("type")

	car := domain.CarOffering{
		ID:           obj.id(),
		Name:         obj.str("name"),
		BrandID:      brand.id(),
		BrandName:    brand.str("name"),
		TypeName:     carType.str("name"),
		DailyPrice:   obj.num("price"),
		Seats:        obj.integer("seats"),
		Transmission: obj.str("transmission"),
		FuelType:     obj.str("engine_type"),
		ImageURL:     obj.str("image"),
	}
	// flattened responses carry the names directly on the attributes
	if car.BrandName == "" {
		car.BrandName = obj.str("brand_name")
	}
	if car.BrandID == "" {
		car.BrandID = idFromValue(obj.Attributes["brand_id"])
	}
	if car.TypeName == "" {
		car.TypeName = obj.str("type_name")
	}
	if car.DailyPrice == 0 {
		car.DailyPrice = obj.num("daily_price")
	}
	return car
}

func idFromValue(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatInt(int64(n), 10)
	default:
		return ""
	}
}

func strFromValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

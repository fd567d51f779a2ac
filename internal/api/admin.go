package api

import (
	"context"
	"net/http"
	"net/url"

	"carbook/internal/domain"
)

// AdminResource is one node of the back-office catalog tree
// (brand → type → model-name → model → car).
type AdminResource struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// CatalogPath addresses a node in the nested admin catalog. Only the segments
// above the requested resource need to be set.
type CatalogPath struct {
	BrandID     string
	TypeID      string
	ModelNameID string
	ModelID     string
}

func (p CatalogPath) prefix(depth int) string {
	path := "/api/admin/Brands"
	segments := []string{p.BrandID, p.TypeID, p.ModelNameID, p.ModelID}
	suffixes := []string{"/Types", "/Model-Names", "/Models", "/Cars"}
	for i := 0; i < depth; i++ {
		path += "/" + url.PathEscape(segments[i]) + suffixes[i]
	}
	return path
}

// ListBrands lists the catalog's top-level brands.
func (c *Client) ListBrands(ctx context.Context) ([]AdminResource, error) {
	return c.listResources(ctx, CatalogPath{}.prefix(0))
}

// CreateBrand adds a brand.
func (c *Client) CreateBrand(ctx context.Context, attrs map[string]any) (*AdminResource, error) {
	return c.createResource(ctx, CatalogPath{}.prefix(0), attrs)
}

// DeleteBrand removes a brand and its subtree.
func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	return c.deleteResource(ctx, CatalogPath{}.prefix(0), id)
}

// ListTypes lists the vehicle types under a brand.
func (c *Client) ListTypes(ctx context.Context, p CatalogPath) ([]AdminResource, error) {
	return c.listResources(ctx, p.prefix(1))
}

// CreateType adds a vehicle type under a brand.
func (c *Client) CreateType(ctx context.Context, p CatalogPath, attrs map[string]any) (*AdminResource, error) {
	return c.createResource(ctx, p.prefix(1), attrs)
}

// DeleteType removes a vehicle type.
func (c *Client) DeleteType(ctx context.Context, p CatalogPath, id string) error {
	return c.deleteResource(ctx, p.prefix(1), id)
}

// ListModelNames lists the model names under a brand and type.
func (c *Client) ListModelNames(ctx context.Context, p CatalogPath) ([]AdminResource, error) {
	return c.listResources(ctx, p.prefix(2))
}

// CreateModelName adds a model name.
func (c *Client) CreateModelName(ctx context.Context, p CatalogPath, attrs map[string]any) (*AdminResource, error) {
	return c.createResource(ctx, p.prefix(2), attrs)
}

// DeleteModelName removes a model name.
func (c *Client) DeleteModelName(ctx context.Context, p CatalogPath, id string) error {
	return c.deleteResource(ctx, p.prefix(2), id)
}

// ListModels lists the concrete models under a model name.
func (c *Client) ListModels(ctx context.Context, p CatalogPath) ([]AdminResource, error) {
	return c.listResources(ctx, p.prefix(3))
}

// CreateModel adds a model.
func (c *Client) CreateModel(ctx context.Context, p CatalogPath, attrs map[string]any) (*AdminResource, error) {
	return c.createResource(ctx, p.prefix(3), attrs)
}

// DeleteModel removes a model.
func (c *Client) DeleteModel(ctx context.Context, p CatalogPath, id string) error {
	return c.deleteResource(ctx, p.prefix(3), id)
}

// ListFleetCars lists the physical cars under a model.
func (c *Client) ListFleetCars(ctx context.Context, p CatalogPath) ([]AdminResource, error) {
	return c.listResources(ctx, p.prefix(4))
}

// CreateFleetCar adds a physical car.
func (c *Client) CreateFleetCar(ctx context.Context, p CatalogPath, attrs map[string]any) (*AdminResource, error) {
	return c.createResource(ctx, p.prefix(4), attrs)
}

// DeleteFleetCar removes a physical car.
func (c *Client) DeleteFleetCar(ctx context.Context, p CatalogPath, id string) error {
	return c.deleteResource(ctx, p.prefix(4), id)
}

// GetAdminBooking fetches one booking for the back office.
func (c *Client) GetAdminBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodGet, "/api/admin/Booking/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		return nil, err
	}
	booking := bookingFromObject(decodeOne(doc))
	if booking.ID == "" {
		booking.ID = id
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking through its lifecycle.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	path := "/api/admin/booking/" + url.PathEscape(id) + "/status"
	return c.do(ctx, http.MethodPost, path, nil, map[string]string{"status": string(status)}, nil)
}

// AssignCar attaches a physical car to a booking.
func (c *Client) AssignCar(ctx context.Context, bookingID, carID string) error {
	path := "/api/admin/Booking/" + url.PathEscape(bookingID) + "/Assign-Car"
	return c.do(ctx, http.MethodPost, path, nil, map[string]string{"car_id": carID}, nil)
}

// AssignDriver attaches a driver to a booking.
func (c *Client) AssignDriver(ctx context.Context, bookingID, driverID string) error {
	path := "/api/admin/Booking/" + url.PathEscape(bookingID) + "/assign-driver"
	return c.do(ctx, http.MethodPost, path, nil, map[string]string{"driver_id": driverID}, nil)
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/Booking/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) listResources(ctx context.Context, path string) ([]AdminResource, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &doc); err != nil {
		return nil, err
	}
	objects := decodeMany(doc)
	resources := make([]AdminResource, 0, len(objects))
	for i := range objects {
		resources = append(resources, adminResourceFromObject(&objects[i]))
	}
	return resources, nil
}

func (c *Client) createResource(ctx context.Context, path string, attrs map[string]any) (*AdminResource, error) {
	var doc resourceDoc
	if err := c.do(ctx, http.MethodPost, path, nil, attrs, &doc); err != nil {
		return nil, err
	}
	resource := adminResourceFromObject(decodeOne(doc))
	return &resource, nil
}

func (c *Client) deleteResource(ctx context.Context, path, id string) error {
	return c.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil, nil)
}

func adminResourceFromObject(obj *resourceObject) AdminResource {
	return AdminResource{
		ID:         obj.id(),
		Name:       obj.str("name"),
		Attributes: obj.Attributes,
	}
}

package service

import (
	"context"

	"carbook/internal/api"
	"carbook/internal/domain"
)

// adminService proxies the back-office operations to the backend through a
// client bound to the admin token slot.
type adminService struct {
	api *api.Client
}

func NewAdminService(client *api.Client) AdminService {
	return &adminService{api: client}
}

func (s *adminService) ListBrands(ctx context.Context) ([]api.AdminResource, error) {
	return s.api.ListBrands(ctx)
}

func (s *adminService) CreateBrand(ctx context.Context, attrs map[string]any) (*api.AdminResource, error) {
	return s.api.CreateBrand(ctx, attrs)
}

func (s *adminService) DeleteBrand(ctx context.Context, id string) error {
	return s.api.DeleteBrand(ctx, id)
}

func (s *adminService) ListTypes(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error) {
	return s.api.ListTypes(ctx, path)
}

func (s *adminService) CreateType(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error) {
	return s.api.CreateType(ctx, path, attrs)
}

func (s *adminService) DeleteType(ctx context.Context, path api.CatalogPath, id string) error {
	return s.api.DeleteType(ctx, path, id)
}

func (s *adminService) ListModelNames(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error) {
	return s.api.ListModelNames(ctx, path)
}

func (s *adminService) CreateModelName(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error) {
	return s.api.CreateModelName(ctx, path, attrs)
}

func (s *adminService) DeleteModelName(ctx context.Context, path api.CatalogPath, id string) error {
	return s.api.DeleteModelName(ctx, path, id)
}

func (s *adminService) ListModels(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error) {
	return s.api.ListModels(ctx, path)
}

func (s *adminService) CreateModel(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error) {
	return s.api.CreateModel(ctx, path, attrs)
}

func (s *adminService) DeleteModel(ctx context.Context, path api.CatalogPath, id string) error {
	return s.api.DeleteModel(ctx, path, id)
}

func (s *adminService) ListFleetCars(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error) {
	return s.api.ListFleetCars(ctx, path)
}

func (s *adminService) CreateFleetCar(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error) {
	return s.api.CreateFleetCar(ctx, path, attrs)
}

func (s *adminService) DeleteFleetCar(ctx context.Context, path api.CatalogPath, id string) error {
	return s.api.DeleteFleetCar(ctx, path, id)
}

func (s *adminService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.api.GetAdminBooking(ctx, id)
}

func (s *adminService) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return s.api.UpdateBookingStatus(ctx, id, status)
}

func (s *adminService) AssignCar(ctx context.Context, bookingID, carID string) error {
	return s.api.AssignCar(ctx, bookingID, carID)
}

func (s *adminService) AssignDriver(ctx context.Context, bookingID, driverID string) error {
	return s.api.AssignDriver(ctx, bookingID, driverID)
}

func (s *adminService) DeleteBooking(ctx context.Context, id string) error {
	return s.api.DeleteBooking(ctx, id)
}

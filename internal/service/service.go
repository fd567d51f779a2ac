package service

import (
	"context"

	"carbook/internal/api"
	"carbook/internal/booking"
	"carbook/internal/domain"
	"carbook/internal/utils"
)

// HomePage is everything the car listing view needs: one page of cars plus
// the filter sidebar metadata.
type HomePage struct {
	Cars       []domain.CarOffering `json:"cars"`
	Pagination domain.Pagination    `json:"pagination"`
	Filters    *domain.FilterInfo   `json:"filters"`
}

// Session is the result of a successful sign-in or sign-up. ResumedBooking is
// set when a deferred booking was replayed as part of authenticating.
type Session struct {
	User           *domain.User     `json:"user"`
	ResumedBooking *booking.Outcome `json:"resumed_booking,omitempty"`
}

type CatalogService interface {
	LoadHome(ctx context.Context, filter api.CarFilter, page int) (*HomePage, error)
	CarDetail(ctx context.Context, id string) (*domain.CarOffering, error)
	Quote(ctx context.Context, carID string, extras []string) (utils.Quote, error)
}

type BookingService interface {
	Submit(ctx context.Context, intent *domain.BookingIntent) booking.Outcome
	ResumePending(ctx context.Context) (*booking.Outcome, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	RecordPaymentMethod(ctx context.Context, carID, bookingID, method string) error
}

type AuthService interface {
	Login(ctx context.Context, creds api.Credentials) (*Session, error)
	Register(ctx context.Context, reg api.Registration) (*Session, error)
	Logout(ctx context.Context) error
}

type LocationService interface {
	ResolveDropoff(ctx context.Context, lat, lng float64) (*domain.Location, error)
	LastDropoff() (*domain.Location, error)
}

type AdminService interface {
	ListBrands(ctx context.Context) ([]api.AdminResource, error)
	CreateBrand(ctx context.Context, attrs map[string]any) (*api.AdminResource, error)
	DeleteBrand(ctx context.Context, id string) error

	ListTypes(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error)
	CreateType(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error)
	DeleteType(ctx context.Context, path api.CatalogPath, id string) error

	ListModelNames(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error)
	CreateModelName(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error)
	DeleteModelName(ctx context.Context, path api.CatalogPath, id string) error

	ListModels(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error)
	CreateModel(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error)
	DeleteModel(ctx context.Context, path api.CatalogPath, id string) error

	ListFleetCars(ctx context.Context, path api.CatalogPath) ([]api.AdminResource, error)
	CreateFleetCar(ctx context.Context, path api.CatalogPath, attrs map[string]any) (*api.AdminResource, error)
	DeleteFleetCar(ctx context.Context, path api.CatalogPath, id string) error

	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
	AssignCar(ctx context.Context, bookingID, carID string) error
	AssignDriver(ctx context.Context, bookingID, driverID string) error
	DeleteBooking(ctx context.Context, id string) error
}

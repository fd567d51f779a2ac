// Package web is the gateway's HTTP surface: a JSON API serving the customer
// booking views and the admin back office, backed by the service layer.
package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"carbook/internal/service"
)

// NewRouter wires every route of the gateway.
func NewRouter(
	catalog service.CatalogService,
	bookings service.BookingService,
	auth service.AuthService,
	locations service.LocationService,
	admin service.AdminService,
) *mux.Router {
	h := &handlers{
		catalog:   catalog,
		bookings:  bookings,
		auth:      auth,
		locations: locations,
		admin:     admin,
	}

	r := mux.NewRouter()
	r.Use(requestLogging)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	userAPI := r.PathPrefix("/api").Subrouter()
	userAPI.HandleFunc("/cars", h.listCars).Methods(http.MethodPost)
	userAPI.HandleFunc("/cars/{id}", h.carDetail).Methods(http.MethodGet)
	userAPI.HandleFunc("/cars/{id}/quote", h.quote).Methods(http.MethodPost)
	userAPI.HandleFunc("/cars/{id}/bookings", h.submitBooking).Methods(http.MethodPost)
	userAPI.HandleFunc("/cars/{carId}/bookings/{id}/payment-method", h.recordPaymentMethod).Methods(http.MethodPost)
	userAPI.HandleFunc("/bookings", h.listBookings).Methods(http.MethodGet)
	userAPI.HandleFunc("/locations/resolve", h.resolveLocation).Methods(http.MethodPost)
	userAPI.HandleFunc("/locations/last-dropoff", h.lastDropoff).Methods(http.MethodGet)

	userAPI.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	userAPI.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	userAPI.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)

	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.HandleFunc("/brands", h.listBrands).Methods(http.MethodGet)
	adminAPI.HandleFunc("/brands", h.createBrand).Methods(http.MethodPost)
	adminAPI.HandleFunc("/brands/{brand}", h.deleteBrand).Methods(http.MethodDelete)
	adminAPI.HandleFunc("/brands/{brand}/types", h.listTypes).Methods(http.MethodGet)
	adminAPI.HandleFunc("/brands/{brand}/types", h.createType).Methods(http.MethodPost)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}", h.deleteType).Methods(http.MethodDelete)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names", h.listModelNames).Methods(http.MethodGet)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names", h.createModelName).Methods(http.MethodPost)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}", h.deleteModelName).Methods(http.MethodDelete)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}/models", h.listModels).Methods(http.MethodGet)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}/models", h.createModel).Methods(http.MethodPost)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}/models/{model}", h.deleteModel).Methods(http.MethodDelete)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}/models/{model}/cars", h.listFleetCars).Methods(http.MethodGet)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}/models/{model}/cars", h.createFleetCar).Methods(http.MethodPost)
	adminAPI.HandleFunc("/brands/{brand}/types/{type}/model-names/{modelName}/models/{model}/cars/{car}", h.deleteFleetCar).Methods(http.MethodDelete)

	adminAPI.HandleFunc("/bookings/{id}", h.adminGetBooking).Methods(http.MethodGet)
	adminAPI.HandleFunc("/bookings/{id}", h.adminDeleteBooking).Methods(http.MethodDelete)
	adminAPI.HandleFunc("/bookings/{id}/status", h.adminUpdateBookingStatus).Methods(http.MethodPost)
	adminAPI.HandleFunc("/bookings/{id}/assign-car", h.adminAssignCar).Methods(http.MethodPost)
	adminAPI.HandleFunc("/bookings/{id}/assign-driver", h.adminAssignDriver).Methods(http.MethodPost)

	return r
}

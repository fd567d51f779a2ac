package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"carbook/internal/api"
	"carbook/internal/booking"
	"carbook/internal/domain"
	"carbook/internal/logger"
	"carbook/internal/service"
)

type handlers struct {
	catalog   service.CatalogService
	bookings  service.BookingService
	auth      service.AuthService
	locations service.LocationService
	admin     service.AdminService
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listCarsRequest carries the filter sidebar selections plus the page number.
type listCarsRequest struct {
	Page     int      `json:"page"`
	BrandIDs []string `json:"brand_ids"`
	TypeIDs  []string `json:"type_ids"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

func (h *handlers) listCars(w http.ResponseWriter, r *http.Request) {
	var req listCarsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}

	filter := api.CarFilter{
		BrandIDs: req.BrandIDs,
		TypeIDs:  req.TypeIDs,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
	page, err := h.catalog.LoadHome(r.Context(), filter, req.Page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) carDetail(w http.ResponseWriter, r *http.Request) {
	car, err := h.catalog.CarDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Extras []string `json:"extras"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	quote, err := h.catalog.Quote(r.Context(), mux.Vars(r)["id"], req.Extras)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// bookingForm is the booking dialog as submitted by the client.
type bookingForm struct {
	PickupDate  string           `json:"pickup_date"`
	PickupTime  string           `json:"pickup_time"`
	DropoffDate string           `json:"dropoff_date"`
	DropoffTime string           `json:"dropoff_time"`
	Extras      []string         `json:"extras"`
	Dropoff     *domain.Location `json:"dropoff_location"`
}

func (h *handlers) submitBooking(w http.ResponseWriter, r *http.Request) {
	var form bookingForm
	if !decodeBody(w, r, &form) {
		return
	}

	car, err := h.catalog.CarDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	intent := booking.NewIntent(car)
	intent.PickupDate = form.PickupDate
	intent.PickupTime = form.PickupTime
	intent.DropoffDate = form.DropoffDate
	intent.DropoffTime = form.DropoffTime
	intent.Extras = form.Extras
	intent.Dropoff = form.Dropoff

	outcome := h.bookings.Submit(r.Context(), intent)
	writeJSON(w, outcomeStatus(outcome), outcome)
}

func (h *handlers) recordPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	vars := mux.Vars(r)
	if err := h.bookings.RecordPaymentMethod(r.Context(), vars["carId"], vars["id"], req.Method); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.bookings.ListBookings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) resolveLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	location, err := h.locations.ResolveDropoff(r.Context(), req.Lat, req.Lng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *handlers) lastDropoff(w http.ResponseWriter, _ *http.Request) {
	location, err := h.locations.LastDropoff()
	if err != nil {
		writeError(w, err)
		return
	}
	if location == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	session, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var reg api.Registration
	if !decodeBody(w, r, &reg) {
		return
	}

	session, err := h.auth.Register(r.Context(), reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// outcomeStatus maps a workflow outcome to the gateway's response status.
func outcomeStatus(outcome booking.Outcome) int {
	switch outcome.State {
	case booking.StateSucceeded:
		return http.StatusCreated
	case booking.StateInvalid:
		return http.StatusUnprocessableEntity
	case booking.StateAuthRequired:
		return http.StatusUnauthorized
	case booking.StateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError translates backend failures into gateway responses. Backend
// errors keep their status and surface their user message; anything else is a
// bad gateway.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, map[string]string{"error": apiErr.UserMessage()})
		return
	}
	logger.Error("unexpected gateway error", "error", err)
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "The service is temporarily unavailable. Please try again."})
}

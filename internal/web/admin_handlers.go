package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"carbook/internal/api"
	"carbook/internal/domain"
)

// pathFromVars rebuilds the nested catalog position from the route variables.
func pathFromVars(r *http.Request) api.CatalogPath {
	vars := mux.Vars(r)
	return api.CatalogPath{
		BrandID:     vars["brand"],
		TypeID:      vars["type"],
		ModelNameID: vars["modelName"],
		ModelID:     vars["model"],
	}
}

func (h *handlers) listBrands(w http.ResponseWriter, r *http.Request) {
	resources, err := h.admin.ListBrands(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *handlers) createBrand(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if !decodeBody(w, r, &attrs) {
		return
	}
	created, err := h.admin.CreateBrand(r.Context(), attrs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) deleteBrand(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteBrand(r.Context(), mux.Vars(r)["brand"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listTypes(w http.ResponseWriter, r *http.Request) {
	resources, err := h.admin.ListTypes(r.Context(), pathFromVars(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *handlers) createType(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if !decodeBody(w, r, &attrs) {
		return
	}
	created, err := h.admin.CreateType(r.Context(), pathFromVars(r), attrs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) deleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteType(r.Context(), pathFromVars(r), mux.Vars(r)["type"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listModelNames(w http.ResponseWriter, r *http.Request) {
	resources, err := h.admin.ListModelNames(r.Context(), pathFromVars(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *handlers) createModelName(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if !decodeBody(w, r, &attrs) {
		return
	}
	created, err := h.admin.CreateModelName(r.Context(), pathFromVars(r), attrs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) deleteModelName(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteModelName(r.Context(), pathFromVars(r), mux.Vars(r)["modelName"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listModels(w http.ResponseWriter, r *http.Request) {
	resources, err := h.admin.ListModels(r.Context(), pathFromVars(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *handlers) createModel(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if !decodeBody(w, r, &attrs) {
		return
	}
	created, err := h.admin.CreateModel(r.Context(), pathFromVars(r), attrs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) deleteModel(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteModel(r.Context(), pathFromVars(r), mux.Vars(r)["model"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listFleetCars(w http.ResponseWriter, r *http.Request) {
	resources, err := h.admin.ListFleetCars(r.Context(), pathFromVars(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *handlers) createFleetCar(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if !decodeBody(w, r, &attrs) {
		return
	}
	created, err := h.admin.CreateFleetCar(r.Context(), pathFromVars(r), attrs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) deleteFleetCar(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteFleetCar(r.Context(), pathFromVars(r), mux.Vars(r)["car"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) adminGetBooking(w http.ResponseWriter, r *http.Request) {
	booked, err := h.admin.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booked)
}

func (h *handlers) adminUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.admin.UpdateBookingStatus(r.Context(), mux.Vars(r)["id"], domain.BookingStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *handlers) adminAssignCar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CarID string `json:"car_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.admin.AssignCar(r.Context(), mux.Vars(r)["id"], req.CarID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *handlers) adminAssignDriver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DriverID string `json:"driver_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.admin.AssignDriver(r.Context(), mux.Vars(r)["id"], req.DriverID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *handlers) adminDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteBooking(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

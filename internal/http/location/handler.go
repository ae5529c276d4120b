package location

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/location"
)

type Handler struct {
	svc *location.Service
}

func NewHandler(svc *location.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/ubicacion_actual", h.latest)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type writeRequest struct {
	TruckID   *int64   `json:"camion_id" validate:"required"`
	Latitude  *float64 `json:"latitud" validate:"required"`
	Longitude *float64 `json:"longitud" validate:"required"`
}

func (req writeRequest) params() location.CreateParams {
	return location.CreateParams{
		TruckID:   *req.TruckID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
}

type patchRequest struct {
	TruckID   *int64   `json:"camion_id"`
	Latitude  *float64 `json:"latitud"`
	Longitude *float64 `json:"longitud"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	truckID, err := api.QueryID(r, "camion_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	locations, err := h.svc.List(r.Context(), location.ListFilter{TruckID: truckID})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(locations))
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	truckID, err := api.QueryID(r, "camion_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Latest(r.Context(), truckID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(l))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, toResponse(l))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(l))
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(l))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req patchRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Update(r.Context(), id, location.Patch(req))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(l))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

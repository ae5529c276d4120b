package truck

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

type Handler struct {
	svc *truck.Service
}

func NewHandler(svc *truck.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type writeRequest struct {
	Brand    string   `json:"marca" validate:"required,max=100"`
	Model    string   `json:"modelo" validate:"required,max=100"`
	Plate    string   `json:"placa" validate:"required,max=20"`
	Capacity *float64 `json:"capacidad" validate:"required"`
	Year     *int     `json:"año" validate:"required"`
	Notes    *string  `json:"informacion_adicional"`
	DriverID *int64   `json:"conductor_id"`
}

func (req writeRequest) params() truck.CreateParams {
	return truck.CreateParams{
		Brand:    req.Brand,
		Model:    req.Model,
		Plate:    req.Plate,
		Capacity: *req.Capacity,
		Year:     *req.Year,
		Notes:    req.Notes,
		DriverID: req.DriverID,
	}
}

type patchRequest struct {
	Brand    *string             `json:"marca" validate:"omitempty,max=100"`
	Model    *string             `json:"modelo" validate:"omitempty,max=100"`
	Plate    *string             `json:"placa" validate:"omitempty,max=20"`
	Capacity *float64            `json:"capacidad"`
	Year     *int                `json:"año"`
	Notes    *string             `json:"informacion_adicional"`
	DriverID api.Nullable[int64] `json:"conductor_id"`
}

func (req patchRequest) patch() truck.Patch {
	return truck.Patch{
		Brand:       req.Brand,
		Model:       req.Model,
		Plate:       req.Plate,
		Capacity:    req.Capacity,
		Year:        req.Year,
		Notes:       req.Notes,
		DriverID:    req.DriverID.Value,
		ClearDriver: req.DriverID.Null(),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(trucks))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, NewResponse(t))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(t))
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

	t, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(t))
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

	t, err := h.svc.Update(r.Context(), id, req.patch())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(t))
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

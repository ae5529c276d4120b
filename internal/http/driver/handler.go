package driver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
)

type Handler struct {
	svc *driver.Service
}

func NewHandler(svc *driver.Service) *Handler {
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
	FirstName string  `json:"nombre" validate:"required,max=100"`
	LastName  string  `json:"apellido" validate:"required,max=100"`
	License   string  `json:"licencia" validate:"required,max=50"`
	Phone     *string `json:"telefono" validate:"omitempty,max=20"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func (req writeRequest) params() driver.CreateParams {
	return driver.CreateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		License:   req.License,
		Phone:     req.Phone,
		Email:     req.Email,
	}
}

type patchRequest struct {
	FirstName *string `json:"nombre" validate:"omitempty,max=100"`
	LastName  *string `json:"apellido" validate:"omitempty,max=100"`
	License   *string `json:"licencia" validate:"omitempty,max=50"`
	Phone     *string `json:"telefono" validate:"omitempty,max=20"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(drivers))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	d, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, NewResponse(d))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(d))
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

	d, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(d))
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

	d, err := h.svc.Update(r.Context(), id, driver.Patch(req))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(d))
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

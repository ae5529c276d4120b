package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/client"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
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
	Name    string  `json:"nombre" validate:"required,max=100"`
	Company *string `json:"empresa" validate:"omitempty,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"telefono" validate:"omitempty,max=20"`
	Address *string `json:"direccion"`
}

func (req writeRequest) params() client.CreateParams {
	return client.CreateParams{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

type patchRequest struct {
	Name    *string `json:"nombre" validate:"omitempty,max=100"`
	Company *string `json:"empresa" validate:"omitempty,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"telefono" validate:"omitempty,max=20"`
	Address *string `json:"direccion"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(clients))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, NewResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(c))
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

	c, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(c))
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

	c, err := h.svc.Update(r.Context(), id, client.Patch(req))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(c))
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

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/auth"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the public token endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.login)
	r.Post("/refresh", h.refresh)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type protectedResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	pair, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, pair)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	pair, err := h.svc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, pair)
}

// Protected echoes the authenticated caller.
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	api.JSON(w, r, http.StatusOK, protectedResponse{
		Message: "Acceso permitido, usuario autenticado",
		User:    p.Username,
	})
}

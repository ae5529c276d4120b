package user

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/auth"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/user"
)

// Handler exposes the caller's own account. No other account is visible.
type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/me", h.me)
	r.Put("/update_profile", h.updateProfile)
	r.Patch("/update_profile", h.updateProfile)
	r.Get("/{id}", h.get)
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"date_joined"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type profileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) current(r *http.Request) (*user.User, error) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, fmt.Errorf("no principal in request: %w", fleet.ErrUnauthorized)
	}

	return h.svc.Get(r.Context(), p.UserID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u, err := h.current(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, []userResponse{toResponse(u)})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.current(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(u))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	p, ok := auth.FromContext(r.Context())
	if !ok {
		api.Error(w, r, fleet.ErrUnauthorized)
		return
	}

	if id != p.UserID {
		api.Error(w, r, fleet.NotFound("user", id))
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(u))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		api.Error(w, r, fleet.ErrUnauthorized)
		return
	}

	var req profileRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), p.UserID, user.ProfilePatch(req))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(u))
}

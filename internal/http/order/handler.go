package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/order"
)

type Handler struct {
	svc *order.Service
}

func NewHandler(svc *order.Service) *Handler {
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
	ClientID     *int64       `json:"cliente_id" validate:"required"`
	TruckID      *int64       `json:"camion_id"`
	DriverID     *int64       `json:"conductor_id"`
	Description  string       `json:"descripcion" validate:"required"`
	Status       order.Status `json:"estado" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	DeliveryDate *fleet.Date  `json:"fecha_entrega"`
}

func (req writeRequest) params() order.CreateParams {
	return order.CreateParams{
		ClientID:     *req.ClientID,
		TruckID:      req.TruckID,
		DriverID:     req.DriverID,
		Description:  req.Description,
		Status:       req.Status,
		DeliveryDate: api.DayOf(req.DeliveryDate),
	}
}

type patchRequest struct {
	ClientID     *int64                   `json:"cliente_id"`
	TruckID      api.Nullable[int64]      `json:"camion_id"`
	DriverID     api.Nullable[int64]      `json:"conductor_id"`
	Description  *string                  `json:"descripcion"`
	Status       *order.Status            `json:"estado" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	DeliveryDate api.Nullable[fleet.Date] `json:"fecha_entrega"`
}

func (req patchRequest) patch() order.Patch {
	return order.Patch{
		ClientID:          req.ClientID,
		TruckID:           req.TruckID.Value,
		DriverID:          req.DriverID.Value,
		Description:       req.Description,
		Status:            req.Status,
		DeliveryDate:      api.DayOf(req.DeliveryDate.Value),
		ClearTruck:        req.TruckID.Null(),
		ClearDriver:       req.DriverID.Null(),
		ClearDeliveryDate: req.DeliveryDate.Null(),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clientID, err := api.QueryID(r, "cliente_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	filter := order.ListFilter{ClientID: clientID}

	if s := r.URL.Query().Get("estado"); s != "" {
		filter.Status = new(order.Status(s))
	}

	orders, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(orders))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	o, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, NewResponse(o))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(o))
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

	o, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(o))
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

	o, err := h.svc.Update(r.Context(), id, req.patch())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, NewResponse(o))
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

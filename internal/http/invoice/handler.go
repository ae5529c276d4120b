package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/facturas_por_mes", h.sumForMonth)
	r.Get("/resumen_facturas", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type writeRequest struct {
	ClientID     *int64           `json:"cliente_id" validate:"required"`
	OrderID      *int64           `json:"pedido_id"`
	Date         *fleet.Date      `json:"fecha" validate:"required"`
	Service      string           `json:"servicio" validate:"required,max=100"`
	Origin       string           `json:"origen" validate:"required,max=100"`
	Destination  string           `json:"destino" validate:"required,max=100"`
	WaitingHours *decimal.Decimal `json:"horas_espera" validate:"required"`
	HourlyRate   *decimal.Decimal `json:"precio_hora" validate:"required"`
	Tolls        *decimal.Decimal `json:"peajes"`
	ListAmount   *decimal.Decimal `json:"importe_lista" validate:"required"`
}

func (req writeRequest) params() invoice.CreateParams {
	tolls := decimal.Zero
	if req.Tolls != nil {
		tolls = *req.Tolls
	}

	return invoice.CreateParams{
		ClientID:     *req.ClientID,
		OrderID:      req.OrderID,
		Date:         req.Date.Time,
		Service:      req.Service,
		Origin:       req.Origin,
		Destination:  req.Destination,
		WaitingHours: *req.WaitingHours,
		HourlyRate:   *req.HourlyRate,
		Tolls:        tolls,
		ListAmount:   *req.ListAmount,
	}
}

type patchRequest struct {
	ClientID     *int64              `json:"cliente_id"`
	OrderID      api.Nullable[int64] `json:"pedido_id"`
	Date         *fleet.Date         `json:"fecha"`
	Service      *string             `json:"servicio" validate:"omitempty,max=100"`
	Origin       *string             `json:"origen" validate:"omitempty,max=100"`
	Destination  *string             `json:"destino" validate:"omitempty,max=100"`
	WaitingHours *decimal.Decimal    `json:"horas_espera"`
	HourlyRate   *decimal.Decimal    `json:"precio_hora"`
	Tolls        *decimal.Decimal    `json:"peajes"`
	ListAmount   *decimal.Decimal    `json:"importe_lista"`
}

func (req patchRequest) patch() invoice.Patch {
	return invoice.Patch{
		ClientID:     req.ClientID,
		OrderID:      req.OrderID.Value,
		ClearOrder:   req.OrderID.Null(),
		Date:         api.DayOf(req.Date),
		Service:      req.Service,
		Origin:       req.Origin,
		Destination:  req.Destination,
		WaitingHours: req.WaitingHours,
		HourlyRate:   req.HourlyRate,
		Tolls:        req.Tolls,
		ListAmount:   req.ListAmount,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter invoice.ListFilter
		err    error
	)

	if filter.ClientID, err = api.QueryID(r, "cliente_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if filter.OrderID, err = api.QueryID(r, "pedido_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if filter.Date, err = api.QueryDate(r, "fecha"); err != nil {
		api.Error(w, r, err)
		return
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	i, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, toResponse(i))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	i, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(i))
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

	i, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(i))
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

	i, err := h.svc.Update(r.Context(), id, req.patch())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(i))
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

func (h *Handler) sumForMonth(w http.ResponseWriter, r *http.Request) {
	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	total, err := h.svc.SumTotal(r.Context(), month)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, monthTotalResponse{Month: month.String(), Total: api.Money(total)})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.MonthlySummary(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toSummaryResponse(totals))
}

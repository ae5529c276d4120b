package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/importer"
)

const (
	allMonths     = "Todos los meses"
	maxUploadSize = 10 << 20
)

type Handler struct {
	svc      *expense.Service
	importer *importer.Service
}

func NewHandler(svc *expense.Service, importer *importer.Service) *Handler {
	return &Handler{svc: svc, importer: importer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/gastos_por_mes", h.sumForTruck)
	r.Get("/gastos_totales", h.sumTotal)
	r.Post("/importar", h.importCSV)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type writeRequest struct {
	TruckID  *int64           `json:"camion_id" validate:"required"`
	Category expense.Category `json:"tipo_gasto" validate:"required,oneof=fuel repair filters insurance other"`
	Amount   *decimal.Decimal `json:"monto" validate:"required"`
	Date     *fleet.Date      `json:"fecha" validate:"required"`
	Comments *string          `json:"comentarios"`
}

func (req writeRequest) params() expense.CreateParams {
	return expense.CreateParams{
		TruckID:  *req.TruckID,
		Category: req.Category,
		Amount:   *req.Amount,
		Date:     req.Date.Time,
		Comments: req.Comments,
	}
}

type patchRequest struct {
	TruckID  *int64            `json:"camion_id"`
	Category *expense.Category `json:"tipo_gasto" validate:"omitempty,oneof=fuel repair filters insurance other"`
	Amount   *decimal.Decimal  `json:"monto"`
	Date     *fleet.Date       `json:"fecha"`
	Comments *string           `json:"comentarios"`
}

func (req patchRequest) patch() expense.Patch {
	return expense.Patch{
		TruckID:  req.TruckID,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     api.DayOf(req.Date),
		Comments: req.Comments,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	truckID, err := api.QueryID(r, "camion_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	expenses, err := h.svc.List(r.Context(), expense.ListFilter{TruckID: truckID, Month: month})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(expenses))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	e, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, toResponse(e))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(e))
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

	e, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(e))
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

	e, err := h.svc.Update(r.Context(), id, req.patch())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(e))
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

func (h *Handler) sumForTruck(w http.ResponseWriter, r *http.Request) {
	truckID, err := api.QueryID(r, "camion_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	total, err := h.svc.SumForTruck(r.Context(), truckID, month)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, truckMonthTotalResponse{
		TruckID: *truckID,
		Month:   month.String(),
		Total:   api.Money(total),
	})
}

func (h *Handler) sumTotal(w http.ResponseWriter, r *http.Request) {
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

	label := allMonths
	if month != nil {
		label = month.String()
	}

	api.JSON(w, r, http.StatusOK, monthTotalResponse{Month: label, Total: api.Money(total)})
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		api.Error(w, r, fleet.Invalid("archivo", "failed to parse form: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.Error(w, r, fleet.Invalid("file", "this field is required"))
		return
	}
	defer file.Close()

	expenses, err := h.importer.Import(r.Context(), file)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, importResponse{
		Imported: len(expenses),
		Expenses: toResponseList(expenses),
	})
}

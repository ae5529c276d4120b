package report

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleet/internal/export"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/report"
)

type Handler struct {
	svc      *report.Service
	exporter *export.Service
}

func NewHandler(svc *report.Service, exporter *export.Service) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/pedidos_por_estado", h.ordersByStatus)
	r.Get("/gastos_por_tipo", h.expensesByCategory)
	r.Get("/sueldos_por_mes", h.payrollByPeriod)
	r.Get("/resumen_general", h.summary)
	r.Get("/exportar", h.export)
}

func (h *Handler) ordersByStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.OrdersByStatus(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toStatusCounts(counts))
}

func (h *Handler) expensesByCategory(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.ExpensesByCategory(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toCategoryTotals(totals))
}

func (h *Handler) payrollByPeriod(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.PayrollByPeriod(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toPeriodTotals(totals))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toSummaryResponse(sum))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	data, err := h.exporter.Workbook(r.Context(), month)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(month)))

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

package payroll

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
)

const allMonths = "Todos los meses"

type Handler struct {
	svc *payroll.Service
}

func NewHandler(svc *payroll.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/sueldos_por_mes", h.sumForMonth)
	r.Get("/reporte_sueldos", h.report)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// writeRequest has no total_neto: the net total is always computed.
type writeRequest struct {
	EmployeeID    *int64           `json:"empleado_id" validate:"required"`
	PayPeriod     *string          `json:"periodo_sueldo" validate:"omitempty,max=20"`
	BaseSalary    *decimal.Decimal `json:"salario_base" validate:"required"`
	Bonuses       *decimal.Decimal `json:"bonos"`
	Deductions    *decimal.Decimal `json:"deducciones"`
	Overtime      *decimal.Decimal `json:"horas_extras"`
	Advance       *decimal.Decimal `json:"adelanto"`
	PaymentDate   *fleet.Date      `json:"fecha_pago" validate:"required"`
	PaymentMethod payroll.Method   `json:"metodo_pago" validate:"omitempty,oneof=cash bank_transfer check"`
}

func (req writeRequest) params() payroll.CreateParams {
	return payroll.CreateParams{
		EmployeeID:    *req.EmployeeID,
		PayPeriod:     req.PayPeriod,
		BaseSalary:    *req.BaseSalary,
		Bonuses:       orZero(req.Bonuses),
		Deductions:    orZero(req.Deductions),
		Overtime:      orZero(req.Overtime),
		Advance:       orZero(req.Advance),
		PaymentDate:   req.PaymentDate.Time,
		PaymentMethod: req.PaymentMethod,
	}
}

type patchRequest struct {
	EmployeeID    *int64           `json:"empleado_id"`
	PayPeriod     *string          `json:"periodo_sueldo" validate:"omitempty,max=20"`
	BaseSalary    *decimal.Decimal `json:"salario_base"`
	Bonuses       *decimal.Decimal `json:"bonos"`
	Deductions    *decimal.Decimal `json:"deducciones"`
	Overtime      *decimal.Decimal `json:"horas_extras"`
	Advance       *decimal.Decimal `json:"adelanto"`
	PaymentDate   *fleet.Date      `json:"fecha_pago"`
	PaymentMethod *payroll.Method  `json:"metodo_pago" validate:"omitempty,oneof=cash bank_transfer check"`
}

func (req patchRequest) patch() payroll.Patch {
	return payroll.Patch{
		EmployeeID:    req.EmployeeID,
		PayPeriod:     req.PayPeriod,
		BaseSalary:    req.BaseSalary,
		Bonuses:       req.Bonuses,
		Deductions:    req.Deductions,
		Overtime:      req.Overtime,
		Advance:       req.Advance,
		PaymentDate:   api.DayOf(req.PaymentDate),
		PaymentMethod: req.PaymentMethod,
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}

	return *d
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employeeID, err := api.QueryID(r, "empleado_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	payrolls, err := h.svc.List(r.Context(), payroll.ListFilter{EmployeeID: employeeID, Month: month})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponseList(payrolls))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusCreated, toResponse(p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(p))
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

	p, err := h.svc.Replace(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(p))
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

	p, err := h.svc.Update(r.Context(), id, req.patch())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, toResponse(p))
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

// sumForMonth requires mes, unlike report.
func (h *Handler) sumForMonth(w http.ResponseWriter, r *http.Request) {
	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	if month == nil {
		api.Error(w, r, fleet.MissingParameter("mes"))
		return
	}

	total, err := h.svc.SumNet(r.Context(), month)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, monthTotalResponse{Month: month.String(), Total: api.Money(total)})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	month, err := api.QueryMonth(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	total, err := h.svc.SumNet(r.Context(), month)
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

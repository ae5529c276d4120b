package payroll

import (
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	driverhttp "github.com/MrJamesThe3rd/fleet/internal/http/driver"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
)

type payrollResponse struct {
	ID            int64                `json:"id"`
	Employee      *driverhttp.Response `json:"empleado"`
	PayPeriod     *string              `json:"periodo_sueldo"`
	BaseSalary    string               `json:"salario_base"`
	Bonuses       string               `json:"bonos"`
	Deductions    string               `json:"deducciones"`
	Overtime      string               `json:"horas_extras"`
	Advance       string               `json:"adelanto"`
	NetTotal      string               `json:"total_neto"`
	PaymentDate   fleet.Date           `json:"fecha_pago"`
	PaymentMethod payroll.Method       `json:"metodo_pago"`
}

type monthTotalResponse struct {
	Month string `json:"mes"`
	Total string `json:"total_sueldos"`
}

func toResponse(p *payroll.Payroll) *payrollResponse {
	return &payrollResponse{
		ID:            p.ID,
		Employee:      driverhttp.NewResponse(p.Employee),
		PayPeriod:     p.PayPeriod,
		BaseSalary:    api.Money(p.BaseSalary),
		Bonuses:       api.Money(p.Bonuses),
		Deductions:    api.Money(p.Deductions),
		Overtime:      api.Money(p.Overtime),
		Advance:       api.Money(p.Advance),
		NetTotal:      api.Money(p.NetTotal),
		PaymentDate:   fleet.NewDate(p.PaymentDate),
		PaymentMethod: p.PaymentMethod,
	}
}

func toResponseList(payrolls []*payroll.Payroll) []*payrollResponse {
	resp := make([]*payrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = toResponse(p)
	}

	return resp
}

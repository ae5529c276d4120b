package report

import (
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
	"github.com/MrJamesThe3rd/fleet/internal/report"
)

type statusCountResponse struct {
	Status order.Status `json:"estado"`
	Total  int64        `json:"total"`
}

type categoryTotalResponse struct {
	Category expense.Category `json:"tipo_gasto"`
	Total    string           `json:"total"`
}

type periodTotalResponse struct {
	Period *string `json:"periodo_sueldo"`
	Total  string  `json:"total_sueldos"`
}

type summaryResponse struct {
	TotalOrders   int64  `json:"total_pedidos"`
	TotalExpenses string `json:"total_gastos"`
	TotalPayroll  string `json:"total_sueldos"`
}

func toStatusCounts(counts []order.StatusCount) []statusCountResponse {
	resp := make([]statusCountResponse, len(counts))
	for i, c := range counts {
		resp[i] = statusCountResponse{Status: c.Status, Total: c.Total}
	}

	return resp
}

func toCategoryTotals(totals []expense.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{Category: t.Category, Total: api.Money(t.Total)}
	}

	return resp
}

func toPeriodTotals(totals []payroll.PeriodTotal) []periodTotalResponse {
	resp := make([]periodTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = periodTotalResponse{Period: t.Period, Total: api.Money(t.Total)}
	}

	return resp
}

func toSummaryResponse(s report.Summary) summaryResponse {
	return summaryResponse{
		TotalOrders:   s.TotalOrders,
		TotalExpenses: api.Money(s.TotalExpenses),
		TotalPayroll:  api.Money(s.TotalPayroll),
	}
}

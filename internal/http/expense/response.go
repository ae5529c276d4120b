package expense

import (
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	truckhttp "github.com/MrJamesThe3rd/fleet/internal/http/truck"
)

type expenseResponse struct {
	ID       int64               `json:"id"`
	Truck    *truckhttp.Response `json:"camion"`
	Category expense.Category    `json:"tipo_gasto"`
	Amount   string              `json:"monto"`
	Date     fleet.Date          `json:"fecha"`
	Comments *string             `json:"comentarios"`
}

type truckMonthTotalResponse struct {
	TruckID int64  `json:"camion_id"`
	Month   string `json:"mes"`
	Total   string `json:"total_gasto"`
}

type monthTotalResponse struct {
	Month string `json:"mes"`
	Total string `json:"total_gasto"`
}

type importResponse struct {
	Imported int                `json:"importados"`
	Expenses []*expenseResponse `json:"gastos"`
}

func toResponse(e *expense.Expense) *expenseResponse {
	return &expenseResponse{
		ID:       e.ID,
		Truck:    truckhttp.NewResponse(e.Truck),
		Category: e.Category,
		Amount:   api.Money(e.Amount),
		Date:     fleet.NewDate(e.Date),
		Comments: e.Comments,
	}
}

func toResponseList(expenses []*expense.Expense) []*expenseResponse {
	resp := make([]*expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}

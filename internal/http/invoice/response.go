package invoice

import (
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	clienthttp "github.com/MrJamesThe3rd/fleet/internal/http/client"
	orderhttp "github.com/MrJamesThe3rd/fleet/internal/http/order"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
)

type invoiceResponse struct {
	ID           int64                `json:"id"`
	Client       *clienthttp.Response `json:"cliente"`
	Order        *orderhttp.Response  `json:"pedido"`
	Date         fleet.Date           `json:"fecha"`
	Service      string               `json:"servicio"`
	Origin       string               `json:"origen"`
	Destination  string               `json:"destino"`
	WaitingHours string               `json:"horas_espera"`
	HourlyRate   string               `json:"precio_hora"`
	Tolls        string               `json:"peajes"`
	ListAmount   string               `json:"importe_lista"`
	WaitingCost  string               `json:"final_h"`
	Total        string               `json:"importe_total"`
}

type monthTotalResponse struct {
	Month string `json:"mes"`
	Total string `json:"total_facturas"`
}

type monthSummaryResponse struct {
	Year  int    `json:"fecha__year"`
	Month int    `json:"fecha__month"`
	Total string `json:"total_importe"`
}

func toResponse(i *invoice.Invoice) *invoiceResponse {
	return &invoiceResponse{
		ID:           i.ID,
		Client:       clienthttp.NewResponse(i.Client),
		Order:        orderhttp.NewResponse(i.Order),
		Date:         fleet.NewDate(i.Date),
		Service:      i.Service,
		Origin:       i.Origin,
		Destination:  i.Destination,
		WaitingHours: api.Money(i.WaitingHours),
		HourlyRate:   api.Money(i.HourlyRate),
		Tolls:        api.Money(i.Tolls),
		ListAmount:   api.Money(i.ListAmount),
		WaitingCost:  api.Money(i.WaitingCost()),
		Total:        api.Money(i.Total()),
	}
}

func toResponseList(invoices []*invoice.Invoice) []*invoiceResponse {
	resp := make([]*invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}

func toSummaryResponse(totals []invoice.MonthTotal) []monthSummaryResponse {
	resp := make([]monthSummaryResponse, len(totals))
	for i, t := range totals {
		resp[i] = monthSummaryResponse{Year: t.Year, Month: t.Month, Total: api.Money(t.Total)}
	}

	return resp
}

package order

import (
	"time"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	clienthttp "github.com/MrJamesThe3rd/fleet/internal/http/client"
	driverhttp "github.com/MrJamesThe3rd/fleet/internal/http/driver"
	truckhttp "github.com/MrJamesThe3rd/fleet/internal/http/truck"
	"github.com/MrJamesThe3rd/fleet/internal/order"
)

type Response struct {
	ID           int64                `json:"id"`
	Client       *clienthttp.Response `json:"cliente"`
	Truck        *truckhttp.Response  `json:"camion"`
	Driver       *driverhttp.Response `json:"conductor"`
	Description  string               `json:"descripcion"`
	Status       order.Status         `json:"estado"`
	CreatedAt    time.Time            `json:"fecha_creacion"`
	DeliveryDate *fleet.Date          `json:"fecha_entrega"`
}

func NewResponse(o *order.Order) *Response {
	if o == nil {
		return nil
	}

	return &Response{
		ID:           o.ID,
		Client:       clienthttp.NewResponse(o.Client),
		Truck:        truckhttp.NewResponse(o.Truck),
		Driver:       driverhttp.NewResponse(o.Driver),
		Description:  o.Description,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		DeliveryDate: api.OptionalDate(o.DeliveryDate),
	}
}

func toResponseList(orders []*order.Order) []*Response {
	resp := make([]*Response, len(orders))
	for i, o := range orders {
		resp[i] = NewResponse(o)
	}

	return resp
}

package truck

import (
	driverhttp "github.com/MrJamesThe3rd/fleet/internal/http/driver"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

type Response struct {
	ID       int64                `json:"id"`
	Brand    string               `json:"marca"`
	Model    string               `json:"modelo"`
	Plate    string               `json:"placa"`
	Capacity float64              `json:"capacidad"`
	Year     int                  `json:"año"`
	Notes    *string              `json:"informacion_adicional"`
	Driver   *driverhttp.Response `json:"conductor"`
}

func NewResponse(t *truck.Truck) *Response {
	if t == nil {
		return nil
	}

	return &Response{
		ID:       t.ID,
		Brand:    t.Brand,
		Model:    t.Model,
		Plate:    t.Plate,
		Capacity: t.Capacity,
		Year:     t.Year,
		Notes:    t.Notes,
		Driver:   driverhttp.NewResponse(t.Driver),
	}
}

func toResponseList(trucks []*truck.Truck) []*Response {
	resp := make([]*Response, len(trucks))
	for i, t := range trucks {
		resp[i] = NewResponse(t)
	}

	return resp
}

package driver

import (
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

type Response struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"nombre"`
	LastName  string     `json:"apellido"`
	License   string     `json:"licencia"`
	Phone     *string    `json:"telefono"`
	Email     *string    `json:"email"`
	HireDate  fleet.Date `json:"fecha_contratacion"`
}

// NewResponse returns nil for a nil driver, so unassigned relations render as null.
func NewResponse(d *driver.Driver) *Response {
	if d == nil {
		return nil
	}

	return &Response{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		License:   d.License,
		Phone:     d.Phone,
		Email:     d.Email,
		HireDate:  fleet.NewDate(d.HireDate),
	}
}

func toResponseList(drivers []*driver.Driver) []*Response {
	resp := make([]*Response, len(drivers))
	for i, d := range drivers {
		resp[i] = NewResponse(d)
	}

	return resp
}

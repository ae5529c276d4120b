package client

import (
	"time"

	"github.com/MrJamesThe3rd/fleet/internal/client"
)

type Response struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	Company      *string   `json:"empresa"`
	Email        string    `json:"email"`
	Phone        *string   `json:"telefono"`
	Address      *string   `json:"direccion"`
	RegisteredAt time.Time `json:"fecha_registro"`
}

func NewResponse(c *client.Client) *Response {
	if c == nil {
		return nil
	}

	return &Response{
		ID:           c.ID,
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
	}
}

func toResponseList(clients []*client.Client) []*Response {
	resp := make([]*Response, len(clients))
	for i, c := range clients {
		resp[i] = NewResponse(c)
	}

	return resp
}

package client

import (
	"time"
)

// Client is a customer of the fleet. Orders and invoices belong to a client.
type Client struct {
	ID           int64
	Name         string
	Company      *string
	Email        string
	Phone        *string
	Address      *string
	RegisteredAt time.Time
}

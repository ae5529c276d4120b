package order

import (
	"time"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// Order is a transport job requested by a client.
type Order struct {
	ID           int64
	ClientID     int64
	Client       *client.Client // Loaded from ClientID
	TruckID      *int64
	Truck        *truck.Truck // Loaded from TruckID
	DriverID     *int64
	Driver       *driver.Driver // Loaded from DriverID
	Description  string
	Status       Status
	CreatedAt    time.Time
	DeliveryDate *time.Time
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status Status
	Total  int64
}

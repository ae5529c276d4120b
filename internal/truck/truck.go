package truck

import (
	"github.com/MrJamesThe3rd/fleet/internal/driver"
)

// Truck is a vehicle of the fleet. Expenses and locations belong to a truck.
type Truck struct {
	ID       int64
	Brand    string
	Model    string
	Plate    string
	Capacity float64
	Year     int
	Notes    *string
	DriverID *int64
	Driver   *driver.Driver // Loaded from DriverID
}

package location

import (
	"time"

	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

// Location is a GPS fix reported for a truck. RecordedAt is set by the store on insert and never changes.
type Location struct {
	ID         int64
	TruckID    int64
	Truck      *truck.Truck
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}

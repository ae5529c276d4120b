package location

import (
	"time"

	truckhttp "github.com/MrJamesThe3rd/fleet/internal/http/truck"
	"github.com/MrJamesThe3rd/fleet/internal/location"
)

type locationResponse struct {
	ID         int64               `json:"id"`
	Truck      *truckhttp.Response `json:"camion"`
	Latitude   float64             `json:"latitud"`
	Longitude  float64             `json:"longitud"`
	RecordedAt time.Time           `json:"timestamp"`
}

func toResponse(l *location.Location) *locationResponse {
	return &locationResponse{
		ID:         l.ID,
		Truck:      truckhttp.NewResponse(l.Truck),
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		RecordedAt: l.RecordedAt,
	}
}

func toResponseList(locations []*location.Location) []*locationResponse {
	resp := make([]*locationResponse, len(locations))
	for i, l := range locations {
		resp[i] = toResponse(l)
	}

	return resp
}

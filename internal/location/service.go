package location

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=location
type Repository interface {
	Create(ctx context.Context, l *Location) error
	Get(ctx context.Context, id int64) (*Location, error)
	List(ctx context.Context, filter ListFilter) ([]*Location, error)
	Update(ctx context.Context, id int64, apply func(l *Location) error) (*Location, error)
	Delete(ctx context.Context, id int64) error

	// Latest returns the most recently recorded location of the truck, or a not found error.
	Latest(ctx context.Context, truckID int64) (*Location, error)
}

type TruckLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*truck.Truck, error)
}

type Service struct {
	repo   Repository
	trucks TruckLookup
}

func NewService(repo Repository, trucks TruckLookup) *Service {
	return &Service{repo: repo, trucks: trucks}
}

type CreateParams struct {
	TruckID   int64
	Latitude  float64
	Longitude float64
}

type Patch struct {
	TruckID   *int64
	Latitude  *float64
	Longitude *float64
}

type ListFilter struct {
	TruckID *int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Location, error) {
	l := &Location{}
	params.applyTo(l)

	if err := validate(l); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	return l, s.attach(ctx, l)
}

func (s *Service) Get(ctx context.Context, id int64) (*Location, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return l, s.attach(ctx, l)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Location, error) {
	locations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return locations, s.attach(ctx, locations...)
}

// Latest fails with an invalid parameter error when truckID is nil.
func (s *Service) Latest(ctx context.Context, truckID *int64) (*Location, error) {
	if truckID == nil {
		return nil, fleet.MissingParameter("camion_id")
	}

	l, err := s.repo.Latest(ctx, *truckID)
	if err != nil {
		return nil, err
	}

	return l, s.attach(ctx, l)
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Location, error) {
	return s.update(ctx, id, func(l *Location) { params.applyTo(l) })
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Location, error) {
	return s.update(ctx, id, func(l *Location) { patch.applyTo(l) })
}

func (s *Service) update(ctx context.Context, id int64, change func(l *Location)) (*Location, error) {
	l, err := s.repo.Update(ctx, id, func(l *Location) error {
		change(l)
		return validate(l)
	})
	if err != nil {
		return nil, err
	}

	return l, s.attach(ctx, l)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) attach(ctx context.Context, locations ...*Location) error {
	if len(locations) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.TruckID)
	}

	trucks, err := s.trucks.GetMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading location trucks: %w", err)
	}

	for _, l := range locations {
		l.Truck = trucks[l.TruckID]
	}

	return nil
}

func (p CreateParams) applyTo(l *Location) {
	l.TruckID = p.TruckID
	l.Latitude = p.Latitude
	l.Longitude = p.Longitude
}

func (p Patch) applyTo(l *Location) {
	if p.TruckID != nil {
		l.TruckID = *p.TruckID
	}

	if p.Latitude != nil {
		l.Latitude = *p.Latitude
	}

	if p.Longitude != nil {
		l.Longitude = *p.Longitude
	}
}

func validate(l *Location) error {
	if l.TruckID <= 0 {
		return fleet.Invalid("camion_id", "this field is required")
	}

	if l.Latitude < -90 || l.Latitude > 90 {
		return fleet.Invalid("latitud", "must be between -90 and 90")
	}

	if l.Longitude < -180 || l.Longitude > 180 {
		return fleet.Invalid("longitud", "must be between -180 and 180")
	}

	return nil
}

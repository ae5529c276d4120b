package truck

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=truck
type Repository interface {
	Create(ctx context.Context, t *Truck) error
	Get(ctx context.Context, id int64) (*Truck, error)
	GetMany(ctx context.Context, ids []int64) ([]*Truck, error)
	// GetByPlates matches plates against the upper-cased stored plate.
	GetByPlates(ctx context.Context, plates []string) ([]*Truck, error)
	List(ctx context.Context) ([]*Truck, error)
	Update(ctx context.Context, id int64, apply func(t *Truck) error) (*Truck, error)
	Delete(ctx context.Context, id int64) error
}

// DriverLookup resolves the drivers assigned to trucks.
type DriverLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*driver.Driver, error)
}

type Service struct {
	repo    Repository
	drivers DriverLookup
}

func NewService(repo Repository, drivers DriverLookup) *Service {
	return &Service{repo: repo, drivers: drivers}
}

type CreateParams struct {
	Brand    string
	Model    string
	Plate    string
	Capacity float64
	Year     int
	Notes    *string
	DriverID *int64
}

type Patch struct {
	Brand    *string
	Model    *string
	Plate    *string
	Capacity *float64
	Year     *int
	Notes    *string
	DriverID *int64

	ClearDriver bool // Unassigns the driver; wins over DriverID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Truck, error) {
	t := &Truck{}
	params.applyTo(t)

	if err := validate(t); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, s.attach(ctx, t)
}

func (s *Service) Get(ctx context.Context, id int64) (*Truck, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return t, s.attach(ctx, t)
}

// GetMany returns the trucks with the given ids keyed by id, with their drivers loaded.
func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]*Truck, error) {
	if len(ids) == 0 {
		return map[int64]*Truck{}, nil
	}

	trucks, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, trucks...); err != nil {
		return nil, err
	}

	byID := make(map[int64]*Truck, len(trucks))
	for _, t := range trucks {
		byID[t.ID] = t
	}

	return byID, nil
}

// ResolvePlates maps each plate to its truck id, ignoring case. The result is keyed by the
// upper-cased plate; unknown plates are absent from it.
func (s *Service) ResolvePlates(ctx context.Context, plates []string) (map[string]int64, error) {
	if len(plates) == 0 {
		return map[string]int64{}, nil
	}

	upper := make([]string, len(plates))
	for i, p := range plates {
		upper[i] = strings.ToUpper(p)
	}

	trucks, err := s.repo.GetByPlates(ctx, upper)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int64, len(trucks))
	for _, t := range trucks {
		ids[strings.ToUpper(t.Plate)] = t.ID
	}

	return ids, nil
}

func (s *Service) List(ctx context.Context) ([]*Truck, error) {
	trucks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return trucks, s.attach(ctx, trucks...)
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Truck, error) {
	t, err := s.repo.Update(ctx, id, func(t *Truck) error {
		params.applyTo(t)
		return validate(t)
	})
	if err != nil {
		return nil, err
	}

	return t, s.attach(ctx, t)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Truck, error) {
	t, err := s.repo.Update(ctx, id, func(t *Truck) error {
		patch.applyTo(t)
		return validate(t)
	})
	if err != nil {
		return nil, err
	}

	return t, s.attach(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// attach loads the assigned driver of each truck with a single lookup.
func (s *Service) attach(ctx context.Context, trucks ...*Truck) error {
	var ids []int64

	for _, t := range trucks {
		if t.DriverID != nil {
			ids = append(ids, *t.DriverID)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	drivers, err := s.drivers.GetMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading truck drivers: %w", err)
	}

	for _, t := range trucks {
		if t.DriverID != nil {
			t.Driver = drivers[*t.DriverID]
		}
	}

	return nil
}

func (p CreateParams) applyTo(t *Truck) {
	t.Brand = p.Brand
	t.Model = p.Model
	t.Plate = p.Plate
	t.Capacity = p.Capacity
	t.Year = p.Year
	t.Notes = p.Notes
	t.DriverID = p.DriverID
	t.Driver = nil
}

func (p Patch) applyTo(t *Truck) {
	if p.Brand != nil {
		t.Brand = *p.Brand
	}

	if p.Model != nil {
		t.Model = *p.Model
	}

	if p.Plate != nil {
		t.Plate = *p.Plate
	}

	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}

	if p.Year != nil {
		t.Year = *p.Year
	}

	if p.Notes != nil {
		t.Notes = p.Notes
	}

	if p.DriverID != nil {
		t.DriverID = p.DriverID
		t.Driver = nil
	}

	if p.ClearDriver {
		t.DriverID = nil
		t.Driver = nil
	}
}

func validate(t *Truck) error {
	return fleet.FirstError(
		fleet.Required("marca", t.Brand),
		fleet.MaxLen("marca", t.Brand, 100),
		fleet.Required("modelo", t.Model),
		fleet.MaxLen("modelo", t.Model, 100),
		fleet.Required("placa", t.Plate),
		fleet.MaxLen("placa", t.Plate, 20),
	)
}

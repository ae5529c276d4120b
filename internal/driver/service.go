package driver

import (
	"context"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=driver
type Repository interface {
	Create(ctx context.Context, d *Driver) error
	Get(ctx context.Context, id int64) (*Driver, error)
	GetMany(ctx context.Context, ids []int64) ([]*Driver, error)
	List(ctx context.Context) ([]*Driver, error)
	// Update loads the driver inside a transaction, lets apply mutate it and writes it back.
	Update(ctx context.Context, id int64, apply func(d *Driver) error) (*Driver, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FirstName string
	LastName  string
	License   string
	Phone     *string
	Email     *string
}

// Patch holds the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	FirstName *string
	LastName  *string
	License   *string
	Phone     *string
	Email     *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Driver, error) {
	d := &Driver{}
	params.applyTo(d)

	if err := validate(d); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Driver, error) {
	return s.repo.Get(ctx, id)
}

// GetMany returns the drivers with the given ids keyed by id. Unknown ids are skipped.
func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]*Driver, error) {
	if len(ids) == 0 {
		return map[int64]*Driver{}, nil
	}

	drivers, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*Driver, len(drivers))
	for _, d := range drivers {
		byID[d.ID] = d
	}

	return byID, nil
}

func (s *Service) List(ctx context.Context) ([]*Driver, error) {
	return s.repo.List(ctx)
}

// Replace overwrites every writable field. Optional fields missing from params are cleared.
func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Driver, error) {
	return s.repo.Update(ctx, id, func(d *Driver) error {
		params.applyTo(d)
		return validate(d)
	})
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Driver, error) {
	return s.repo.Update(ctx, id, func(d *Driver) error {
		patch.applyTo(d)
		return validate(d)
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (p CreateParams) applyTo(d *Driver) {
	d.FirstName = p.FirstName
	d.LastName = p.LastName
	d.License = p.License
	d.Phone = p.Phone
	d.Email = p.Email
}

func (p Patch) applyTo(d *Driver) {
	if p.FirstName != nil {
		d.FirstName = *p.FirstName
	}

	if p.LastName != nil {
		d.LastName = *p.LastName
	}

	if p.License != nil {
		d.License = *p.License
	}

	if p.Phone != nil {
		d.Phone = p.Phone
	}

	if p.Email != nil {
		d.Email = p.Email
	}
}

func validate(d *Driver) error {
	errs := []error{
		fleet.Required("nombre", d.FirstName),
		fleet.MaxLen("nombre", d.FirstName, 100),
		fleet.Required("apellido", d.LastName),
		fleet.MaxLen("apellido", d.LastName, 100),
		fleet.Required("licencia", d.License),
		fleet.MaxLen("licencia", d.License, 50),
	}

	if d.Phone != nil {
		errs = append(errs, fleet.MaxLen("telefono", *d.Phone, 20))
	}

	if d.Email != nil {
		errs = append(errs, fleet.MaxLen("email", *d.Email, 254))
	}

	return fleet.FirstError(errs...)
}

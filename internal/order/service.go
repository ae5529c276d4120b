package order

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	GetMany(ctx context.Context, ids []int64) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	Update(ctx context.Context, id int64, apply func(o *Order) error) (*Order, error)
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type ClientLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*client.Client, error)
}

type TruckLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*truck.Truck, error)
}

type DriverLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*driver.Driver, error)
}

type Service struct {
	repo    Repository
	clients ClientLookup
	trucks  TruckLookup
	drivers DriverLookup
}

func NewService(repo Repository, clients ClientLookup, trucks TruckLookup, drivers DriverLookup) *Service {
	return &Service{repo: repo, clients: clients, trucks: trucks, drivers: drivers}
}

type CreateParams struct {
	ClientID     int64
	TruckID      *int64
	DriverID     *int64
	Description  string
	Status       Status // Defaults to pending
	DeliveryDate *time.Time
}

type Patch struct {
	ClientID     *int64
	TruckID      *int64
	DriverID     *int64
	Description  *string
	Status       *Status
	DeliveryDate *time.Time

	// Clear flags null the matching optional field and win over its value.
	ClearTruck        bool
	ClearDriver       bool
	ClearDeliveryDate bool
}

type ListFilter struct {
	ClientID *int64
	Status   *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	o := &Order{}
	params.applyTo(o)

	if err := validate(o); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.attach(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]*Order, error) {
	if len(ids) == 0 {
		return map[int64]*Order{}, nil
	}

	orders, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, orders...); err != nil {
		return nil, err
	}

	byID := make(map[int64]*Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	return byID, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, orders...); err != nil {
		return nil, err
	}

	return orders, nil
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Order, error) {
	return s.update(ctx, id, func(o *Order) { params.applyTo(o) })
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Order, error) {
	return s.update(ctx, id, func(o *Order) { patch.applyTo(o) })
}

func (s *Service) update(ctx context.Context, id int64, change func(o *Order)) (*Order, error) {
	o, err := s.repo.Update(ctx, id, func(o *Order) error {
		change(o)
		return validate(o)
	})
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

// Delete removes the order. Invoices that referenced it keep existing with the order cleared.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}

// attach loads the client, truck and driver of every order, one lookup per kind.
func (s *Service) attach(ctx context.Context, orders ...*Order) error {
	if len(orders) == 0 {
		return nil
	}

	var clientIDs, truckIDs, driverIDs []int64

	for _, o := range orders {
		clientIDs = append(clientIDs, o.ClientID)

		if o.TruckID != nil {
			truckIDs = append(truckIDs, *o.TruckID)
		}

		if o.DriverID != nil {
			driverIDs = append(driverIDs, *o.DriverID)
		}
	}

	var (
		clients map[int64]*client.Client
		trucks  map[int64]*truck.Truck
		drivers map[int64]*driver.Driver
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		clients, err = s.clients.GetMany(gctx, clientIDs)

		return err
	})

	if len(truckIDs) > 0 {
		g.Go(func() error {
			var err error
			trucks, err = s.trucks.GetMany(gctx, truckIDs)

			return err
		})
	}

	if len(driverIDs) > 0 {
		g.Go(func() error {
			var err error
			drivers, err = s.drivers.GetMany(gctx, driverIDs)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading order relations: %w", err)
	}

	for _, o := range orders {
		o.Client = clients[o.ClientID]

		if o.TruckID != nil {
			o.Truck = trucks[*o.TruckID]
		}

		if o.DriverID != nil {
			o.Driver = drivers[*o.DriverID]
		}
	}

	return nil
}

func (p CreateParams) applyTo(o *Order) {
	o.ClientID = p.ClientID
	o.TruckID = p.TruckID
	o.DriverID = p.DriverID
	o.Description = p.Description
	o.Status = p.Status
	o.DeliveryDate = p.DeliveryDate

	if o.Status == "" {
		o.Status = StatusPending
	}
}

func (p Patch) applyTo(o *Order) {
	if p.ClientID != nil {
		o.ClientID = *p.ClientID
	}

	if p.TruckID != nil {
		o.TruckID = p.TruckID
	}

	if p.DriverID != nil {
		o.DriverID = p.DriverID
	}

	if p.Description != nil {
		o.Description = *p.Description
	}

	if p.Status != nil {
		o.Status = *p.Status
	}

	if p.DeliveryDate != nil {
		o.DeliveryDate = p.DeliveryDate
	}

	if p.ClearTruck {
		o.TruckID = nil
		o.Truck = nil
	}

	if p.ClearDriver {
		o.DriverID = nil
		o.Driver = nil
	}

	if p.ClearDeliveryDate {
		o.DeliveryDate = nil
	}
}

func validate(o *Order) error {
	if o.ClientID <= 0 {
		return fleet.Invalid("cliente_id", "this field is required")
	}

	if !o.Status.Valid() {
		return fleet.Invalid("estado", "%q is not a valid choice", o.Status)
	}

	return fleet.Required("descripcion", o.Description)
}

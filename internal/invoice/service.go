package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/order"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	Create(ctx context.Context, i *Invoice) error
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	Update(ctx context.Context, id int64, apply func(i *Invoice) error) (*Invoice, error)
	Delete(ctx context.Context, id int64) error

	// SumTotal adds up invoice totals dated within month, or of every invoice when month is nil.
	SumTotal(ctx context.Context, month *fleet.Month) (decimal.Decimal, error)
	// MonthlySummary returns one total per (year, month) in ascending order.
	MonthlySummary(ctx context.Context) ([]MonthTotal, error)
}

type ClientLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*client.Client, error)
}

type OrderLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*order.Order, error)
}

type Service struct {
	repo    Repository
	clients ClientLookup
	orders  OrderLookup
}

func NewService(repo Repository, clients ClientLookup, orders OrderLookup) *Service {
	return &Service{repo: repo, clients: clients, orders: orders}
}

type CreateParams struct {
	ClientID     int64
	OrderID      *int64
	Date         time.Time
	Service      string
	Origin       string
	Destination  string
	WaitingHours decimal.Decimal
	HourlyRate   decimal.Decimal
	Tolls        decimal.Decimal
	ListAmount   decimal.Decimal
}

type Patch struct {
	ClientID     *int64
	OrderID      *int64
	Date         *time.Time
	Service      *string
	Origin       *string
	Destination  *string
	WaitingHours *decimal.Decimal
	HourlyRate   *decimal.Decimal
	Tolls        *decimal.Decimal
	ListAmount   *decimal.Decimal

	ClearOrder bool // Detaches the order; wins over OrderID
}

// ListFilter fields combine with AND. Date matches exactly.
type ListFilter struct {
	ClientID *int64
	OrderID  *int64
	Date     *time.Time
	Month    *fleet.Month
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	i := &Invoice{}
	params.applyTo(i)

	if err := validate(i); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	return i, s.attach(ctx, i)
}

func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	i, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return i, s.attach(ctx, i)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	invoices, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return invoices, s.attach(ctx, invoices...)
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Invoice, error) {
	return s.update(ctx, id, func(i *Invoice) { params.applyTo(i) })
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Invoice, error) {
	return s.update(ctx, id, func(i *Invoice) { patch.applyTo(i) })
}

func (s *Service) update(ctx context.Context, id int64, change func(i *Invoice)) (*Invoice, error) {
	i, err := s.repo.Update(ctx, id, func(i *Invoice) error {
		change(i)
		return validate(i)
	})
	if err != nil {
		return nil, err
	}

	return i, s.attach(ctx, i)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SumTotal totals the invoices of one month. The month is required.
func (s *Service) SumTotal(ctx context.Context, month *fleet.Month) (decimal.Decimal, error) {
	if month == nil {
		return decimal.Zero, fleet.MissingParameter("mes")
	}

	return s.repo.SumTotal(ctx, month)
}

func (s *Service) MonthlySummary(ctx context.Context) ([]MonthTotal, error) {
	return s.repo.MonthlySummary(ctx)
}

// attach loads clients and orders concurrently, one lookup per kind.
func (s *Service) attach(ctx context.Context, invoices ...*Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	var clientIDs, orderIDs []int64

	for _, i := range invoices {
		clientIDs = append(clientIDs, i.ClientID)

		if i.OrderID != nil {
			orderIDs = append(orderIDs, *i.OrderID)
		}
	}

	var (
		clients map[int64]*client.Client
		orders  map[int64]*order.Order
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		clients, err = s.clients.GetMany(gctx, clientIDs)

		return err
	})

	if len(orderIDs) > 0 {
		g.Go(func() error {
			var err error
			orders, err = s.orders.GetMany(gctx, orderIDs)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading invoice relations: %w", err)
	}

	for _, i := range invoices {
		i.Client = clients[i.ClientID]

		if i.OrderID != nil {
			i.Order = orders[*i.OrderID]
		}
	}

	return nil
}

func (p CreateParams) applyTo(i *Invoice) {
	i.ClientID = p.ClientID
	i.OrderID = p.OrderID
	i.Order = nil
	i.Date = p.Date
	i.Service = p.Service
	i.Origin = p.Origin
	i.Destination = p.Destination
	i.WaitingHours = p.WaitingHours
	i.HourlyRate = p.HourlyRate
	i.Tolls = p.Tolls
	i.ListAmount = p.ListAmount
}

func (p Patch) applyTo(i *Invoice) {
	if p.ClientID != nil {
		i.ClientID = *p.ClientID
	}

	if p.OrderID != nil {
		i.OrderID = p.OrderID
		i.Order = nil
	}

	if p.ClearOrder {
		i.OrderID = nil
		i.Order = nil
	}

	if p.Date != nil {
		i.Date = *p.Date
	}

	if p.Service != nil {
		i.Service = *p.Service
	}

	if p.Origin != nil {
		i.Origin = *p.Origin
	}

	if p.Destination != nil {
		i.Destination = *p.Destination
	}

	if p.WaitingHours != nil {
		i.WaitingHours = *p.WaitingHours
	}

	if p.HourlyRate != nil {
		i.HourlyRate = *p.HourlyRate
	}

	if p.Tolls != nil {
		i.Tolls = *p.Tolls
	}

	if p.ListAmount != nil {
		i.ListAmount = *p.ListAmount
	}
}

func validate(i *Invoice) error {
	if i.ClientID <= 0 {
		return fleet.Invalid("cliente_id", "this field is required")
	}

	if i.Date.IsZero() {
		return fleet.Invalid("fecha", "this field is required")
	}

	return fleet.FirstError(
		fleet.Required("servicio", i.Service),
		fleet.MaxLen("servicio", i.Service, 100),
		fleet.Required("origen", i.Origin),
		fleet.MaxLen("origen", i.Origin, 100),
		fleet.Required("destino", i.Destination),
		fleet.MaxLen("destino", i.Destination, 100),
		fleet.CheckNonNegativeAmount("horas_espera", i.WaitingHours),
		fleet.CheckNonNegativeAmount("precio_hora", i.HourlyRate),
		fleet.CheckAmount("peajes", i.Tolls),
		fleet.CheckNonNegativeAmount("importe_lista", i.ListAmount),
	)
}

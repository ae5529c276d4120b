package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	CreateBatch(ctx context.Context, expenses []*Expense) error
	Get(ctx context.Context, id int64) (*Expense, error)
	List(ctx context.Context, filter ListFilter) ([]*Expense, error)
	Update(ctx context.Context, id int64, apply func(e *Expense) error) (*Expense, error)
	Delete(ctx context.Context, id int64) error

	// Sum adds up the amounts matching filter. No matching rows sum to zero.
	Sum(ctx context.Context, filter ListFilter) (decimal.Decimal, error)
	SumByCategory(ctx context.Context) ([]CategoryTotal, error)
}

// TruckLookup loads trucks for detail responses and resolves plates for imports.
type TruckLookup interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]*truck.Truck, error)
	ResolvePlates(ctx context.Context, plates []string) (map[string]int64, error)
}

type Service struct {
	repo   Repository
	trucks TruckLookup
}

func NewService(repo Repository, trucks TruckLookup) *Service {
	return &Service{repo: repo, trucks: trucks}
}

type CreateParams struct {
	TruckID  int64
	Category Category
	Amount   decimal.Decimal
	Date     time.Time
	Comments *string
}

type Patch struct {
	TruckID  *int64
	Category *Category
	Amount   *decimal.Decimal
	Date     *time.Time
	Comments *string
}

type ListFilter struct {
	TruckID *int64
	Month   *fleet.Month
}

// ImportRow is one expense read from a CSV file, identified by truck plate.
type ImportRow struct {
	Line     int
	Plate    string
	Category Category
	Amount   decimal.Decimal
	Date     time.Time
	Comments *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	e := &Expense{}
	params.applyTo(e)

	if err := validate(e); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if err := s.attach(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	expenses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, expenses...); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Expense, error) {
	return s.update(ctx, id, func(e *Expense) { params.applyTo(e) })
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Expense, error) {
	return s.update(ctx, id, func(e *Expense) { patch.applyTo(e) })
}

func (s *Service) update(ctx context.Context, id int64, change func(e *Expense)) (*Expense, error) {
	e, err := s.repo.Update(ctx, id, func(e *Expense) error {
		change(e)
		return validate(e)
	})
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SumForTruck totals the expenses of one truck within one month. Both arguments are required.
func (s *Service) SumForTruck(ctx context.Context, truckID *int64, month *fleet.Month) (decimal.Decimal, error) {
	if truckID == nil {
		return decimal.Zero, fleet.MissingParameter("camion_id")
	}

	if month == nil {
		return decimal.Zero, fleet.MissingParameter("mes")
	}

	return s.repo.Sum(ctx, ListFilter{TruckID: truckID, Month: month})
}

// SumTotal totals the expenses of every truck, restricted to month when it is given.
func (s *Service) SumTotal(ctx context.Context, month *fleet.Month) (decimal.Decimal, error) {
	return s.repo.Sum(ctx, ListFilter{Month: month})
}

func (s *Service) SumByCategory(ctx context.Context) ([]CategoryTotal, error) {
	return s.repo.SumByCategory(ctx)
}

// ImportBatch resolves the plates of rows and stores all of them in one transaction.
// A single invalid row rejects the whole batch.
func (s *Service) ImportBatch(ctx context.Context, rows []ImportRow) ([]*Expense, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	plates := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, r := range rows {
		plate := strings.ToUpper(r.Plate)
		if !seen[plate] {
			seen[plate] = true
			plates = append(plates, plate)
		}
	}

	truckIDs, err := s.trucks.ResolvePlates(ctx, plates)
	if err != nil {
		return nil, fmt.Errorf("resolving plates: %w", err)
	}

	expenses := make([]*Expense, len(rows))

	for i, r := range rows {
		truckID, ok := truckIDs[strings.ToUpper(r.Plate)]
		if !ok {
			return nil, fmt.Errorf("line %d: %w", r.Line, fleet.Invalid("placa", "no truck with plate %q", r.Plate))
		}

		e := &Expense{
			TruckID:  truckID,
			Category: r.Category,
			Amount:   r.Amount,
			Date:     r.Date,
			Comments: r.Comments,
		}

		if err := validate(e); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.Line, err)
		}

		expenses[i] = e
	}

	if err := s.repo.CreateBatch(ctx, expenses); err != nil {
		return nil, fmt.Errorf("storing imported expenses: %w", err)
	}

	if err := s.attach(ctx, expenses...); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *Service) attach(ctx context.Context, expenses ...*Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.TruckID)
	}

	trucks, err := s.trucks.GetMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading expense trucks: %w", err)
	}

	for _, e := range expenses {
		e.Truck = trucks[e.TruckID]
	}

	return nil
}

func (p CreateParams) applyTo(e *Expense) {
	e.TruckID = p.TruckID
	e.Category = p.Category
	e.Amount = p.Amount
	e.Date = p.Date
	e.Comments = p.Comments
}

func (p Patch) applyTo(e *Expense) {
	if p.TruckID != nil {
		e.TruckID = *p.TruckID
	}

	if p.Category != nil {
		e.Category = *p.Category
	}

	if p.Amount != nil {
		e.Amount = *p.Amount
	}

	if p.Date != nil {
		e.Date = *p.Date
	}

	if p.Comments != nil {
		e.Comments = p.Comments
	}
}

func validate(e *Expense) error {
	if e.TruckID <= 0 {
		return fleet.Invalid("camion_id", "this field is required")
	}

	if !e.Category.Valid() {
		return fleet.Invalid("tipo_gasto", "%q is not a valid choice", e.Category)
	}

	if e.Date.IsZero() {
		return fleet.Invalid("fecha", "this field is required")
	}

	return fleet.CheckAmount("monto", e.Amount)
}

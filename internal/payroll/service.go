package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/driver"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payroll
type Repository interface {
	Create(ctx context.Context, p *Payroll) error
	Get(ctx context.Context, id int64) (*Payroll, error)
	List(ctx context.Context, filter ListFilter) ([]*Payroll, error)
	Update(ctx context.Context, id int64, apply func(p *Payroll) error) (*Payroll, error)
	Delete(ctx context.Context, id int64) error

	// SumNet adds up net totals of payrolls paid within month, or of every payroll when month is nil.
	SumNet(ctx context.Context, month *fleet.Month) (decimal.Decimal, error)
	SumByPeriod(ctx context.Context) ([]PeriodTotal, error)
}

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

// CreateParams has no net total: it is computed from the other amounts.
type CreateParams struct {
	EmployeeID    int64
	PayPeriod     *string
	BaseSalary    decimal.Decimal
	Bonuses       decimal.Decimal
	Deductions    decimal.Decimal
	Overtime      decimal.Decimal
	Advance       decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod Method // Defaults to bank_transfer
}

type Patch struct {
	EmployeeID    *int64
	PayPeriod     *string
	BaseSalary    *decimal.Decimal
	Bonuses       *decimal.Decimal
	Deductions    *decimal.Decimal
	Overtime      *decimal.Decimal
	Advance       *decimal.Decimal
	PaymentDate   *time.Time
	PaymentMethod *Method
}

// ListFilter matches Month against the payment date.
type ListFilter struct {
	EmployeeID *int64
	Month      *fleet.Month
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Payroll, error) {
	p := &Payroll{}
	params.applyTo(p)
	p.recompute()

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, s.attach(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Payroll, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return p, s.attach(ctx, p)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payroll, error) {
	payrolls, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return payrolls, s.attach(ctx, payrolls...)
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Payroll, error) {
	return s.update(ctx, id, func(p *Payroll) { params.applyTo(p) })
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Payroll, error) {
	return s.update(ctx, id, func(p *Payroll) { patch.applyTo(p) })
}

// update recomputes the net total inside the store transaction, so readers never see a stale value.
func (s *Service) update(ctx context.Context, id int64, change func(p *Payroll)) (*Payroll, error) {
	p, err := s.repo.Update(ctx, id, func(p *Payroll) error {
		change(p)
		p.recompute()

		return validate(p)
	})
	if err != nil {
		return nil, err
	}

	return p, s.attach(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SumNet(ctx context.Context, month *fleet.Month) (decimal.Decimal, error) {
	return s.repo.SumNet(ctx, month)
}

func (s *Service) SumByPeriod(ctx context.Context) ([]PeriodTotal, error) {
	return s.repo.SumByPeriod(ctx)
}

func (s *Service) attach(ctx context.Context, payrolls ...*Payroll) error {
	if len(payrolls) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(payrolls))
	for _, p := range payrolls {
		ids = append(ids, p.EmployeeID)
	}

	drivers, err := s.drivers.GetMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading payroll employees: %w", err)
	}

	for _, p := range payrolls {
		p.Employee = drivers[p.EmployeeID]
	}

	return nil
}

func (p CreateParams) applyTo(pr *Payroll) {
	pr.EmployeeID = p.EmployeeID
	pr.PayPeriod = p.PayPeriod
	pr.BaseSalary = p.BaseSalary
	pr.Bonuses = p.Bonuses
	pr.Deductions = p.Deductions
	pr.Overtime = p.Overtime
	pr.Advance = p.Advance
	pr.PaymentDate = p.PaymentDate
	pr.PaymentMethod = p.PaymentMethod

	if pr.PaymentMethod == "" {
		pr.PaymentMethod = MethodBankTransfer
	}
}

func (p Patch) applyTo(pr *Payroll) {
	if p.EmployeeID != nil {
		pr.EmployeeID = *p.EmployeeID
	}

	if p.PayPeriod != nil {
		pr.PayPeriod = p.PayPeriod
	}

	if p.BaseSalary != nil {
		pr.BaseSalary = *p.BaseSalary
	}

	if p.Bonuses != nil {
		pr.Bonuses = *p.Bonuses
	}

	if p.Deductions != nil {
		pr.Deductions = *p.Deductions
	}

	if p.Overtime != nil {
		pr.Overtime = *p.Overtime
	}

	if p.Advance != nil {
		pr.Advance = *p.Advance
	}

	if p.PaymentDate != nil {
		pr.PaymentDate = *p.PaymentDate
	}

	if p.PaymentMethod != nil {
		pr.PaymentMethod = *p.PaymentMethod
	}
}

func validate(p *Payroll) error {
	if p.EmployeeID <= 0 {
		return fleet.Invalid("empleado_id", "this field is required")
	}

	if !p.PaymentMethod.Valid() {
		return fleet.Invalid("metodo_pago", "%q is not a valid choice", p.PaymentMethod)
	}

	if p.PaymentDate.IsZero() {
		return fleet.Invalid("fecha_pago", "this field is required")
	}

	var period string
	if p.PayPeriod != nil {
		period = *p.PayPeriod
	}

	return fleet.FirstError(
		fleet.MaxLen("periodo_sueldo", period, 20),
		fleet.CheckAmount("salario_base", p.BaseSalary),
		fleet.CheckAmount("bonos", p.Bonuses),
		fleet.CheckAmount("deducciones", p.Deductions),
		fleet.CheckAmount("horas_extras", p.Overtime),
		fleet.CheckAmount("adelanto", p.Advance),
		fleet.CheckAmount("total_neto", p.NetTotal),
	)
}

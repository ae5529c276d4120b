package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/driver"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheck        Method = "check"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck:
		return true
	}

	return false
}

// Payroll is one salary payment to a driver. NetTotal is always derived by ComputeNet.
type Payroll struct {
	ID            int64
	EmployeeID    int64
	Employee      *driver.Driver
	PayPeriod     *string
	BaseSalary    decimal.Decimal
	Bonuses       decimal.Decimal
	Deductions    decimal.Decimal
	Overtime      decimal.Decimal
	Advance       decimal.Decimal
	NetTotal      decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod Method
}

// ComputeNet returns (base + bonuses + overtime) - (deductions + advance).
func ComputeNet(base, bonuses, overtime, deductions, advance decimal.Decimal) decimal.Decimal {
	return base.Add(bonuses).Add(overtime).Sub(deductions.Add(advance))
}

func (p *Payroll) recompute() {
	p.NetTotal = ComputeNet(p.BaseSalary, p.Bonuses, p.Overtime, p.Deductions, p.Advance)
}

// PeriodTotal is the net paid for one pay-period label. A nil Period groups payrolls without a label.
type PeriodTotal struct {
	Period *string
	Total  decimal.Decimal
}

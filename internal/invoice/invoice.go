package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	"github.com/MrJamesThe3rd/fleet/internal/order"
)

type Invoice struct {
	ID           int64
	ClientID     int64
	Client       *client.Client
	OrderID      *int64
	Order        *order.Order
	Date         time.Time
	Service      string
	Origin       string
	Destination  string
	WaitingHours decimal.Decimal
	HourlyRate   decimal.Decimal
	Tolls        decimal.Decimal
	ListAmount   decimal.Decimal
}

// ComputeDerived returns the waiting cost (hours times rate) and the invoice total.
// The product is kept at full precision; callers round only for display.
func ComputeDerived(waitingHours, hourlyRate, tolls, listAmount decimal.Decimal) (waitingCost, total decimal.Decimal) {
	waitingCost = waitingHours.Mul(hourlyRate)
	total = waitingCost.Add(tolls).Add(listAmount)

	return waitingCost, total
}

func (i *Invoice) WaitingCost() decimal.Decimal {
	cost, _ := ComputeDerived(i.WaitingHours, i.HourlyRate, i.Tolls, i.ListAmount)
	return cost
}

func (i *Invoice) Total() decimal.Decimal {
	_, total := ComputeDerived(i.WaitingHours, i.HourlyRate, i.Tolls, i.ListAmount)
	return total
}

// MonthTotal is the sum of invoice totals dated within one calendar month.
type MonthTotal struct {
	Year  int
	Month int
	Total decimal.Decimal
}

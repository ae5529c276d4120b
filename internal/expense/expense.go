package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

// Category classifies what an expense was spent on.
type Category string

const (
	CategoryFuel      Category = "fuel"
	CategoryRepair    Category = "repair"
	CategoryFilters   Category = "filters"
	CategoryInsurance Category = "insurance"
	CategoryOther     Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFuel, CategoryRepair, CategoryFilters, CategoryInsurance, CategoryOther:
		return true
	}

	return false
}

// Expense is money spent on one truck.
type Expense struct {
	ID       int64
	TruckID  int64
	Truck    *truck.Truck // Loaded from TruckID
	Category Category
	Amount   decimal.Decimal
	Date     time.Time
	Comments *string
}

// CategoryTotal is the summed amount of one expense category.
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
}

package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
)

var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q: expected DD-MM-YYYY or YYYY-MM-DD", s)
}

// parseAmount accepts European notation ("1.234,56") when a comma is present and
// plain notation ("1234.56") otherwise.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}

var categoryAliases = map[string]expense.Category{
	"combustible": expense.CategoryFuel,
	"reparacion":  expense.CategoryRepair,
	"reparación":  expense.CategoryRepair,
	"filtros":     expense.CategoryFilters,
	"seguro":      expense.CategoryInsurance,
	"otros":       expense.CategoryOther,
}

func parseCategory(s string) (expense.Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	if c := expense.Category(name); c.Valid() {
		return c, nil
	}

	if c, ok := categoryAliases[name]; ok {
		return c, nil
	}

	return "", fmt.Errorf("unknown expense type %q", s)
}

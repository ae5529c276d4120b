package fleet

import (
	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(10,2): at most 8 integer and 2 fraction digits.
var maxAmount = decimal.New(1, 8)

// CheckAmount validates that d fits the store's fixed-point column.
func CheckAmount(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return Invalid(field, "must have at most 2 decimal places")
	}

	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return Invalid(field, "must have at most 10 digits")
	}

	return nil
}

// CheckNonNegativeAmount is CheckAmount plus a lower bound of zero.
func CheckNonNegativeAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return Invalid(field, "must be greater than or equal to 0")
	}

	return CheckAmount(field, d)
}

// Required reports an empty mandatory text field.
func Required(field, value string) error {
	if value == "" {
		return Invalid(field, "this field is required")
	}

	return nil
}

// MaxLen reports a text field longer than n characters.
func MaxLen(field, value string, n int) error {
	if len([]rune(value)) > n {
		return Invalid(field, "must have at most %d characters", n)
	}

	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

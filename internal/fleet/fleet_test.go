package fleet_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    fleet.Month
		wantErr bool
	}{
		{name: "Valid", in: "2025-03", want: fleet.Month{Year: 2025, Month: time.March}},
		{name: "December", in: "1999-12", want: fleet.Month{Year: 1999, Month: time.December}},
		{name: "Slash", in: "2025/03", wantErr: true},
		{name: "SingleDigitMonth", in: "2025-3", wantErr: true},
		{name: "MonthOutOfRange", in: "2025-13", wantErr: true},
		{name: "FullDate", in: "2025-03-01", wantErr: true},
		{name: "Empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fleet.ParseMonth(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, fleet.ErrInvalidParameter))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestMonth_Range(t *testing.T) {
	start, end := fleet.Month{Year: 2025, Month: time.December}.Range()

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDate_JSON(t *testing.T) {
	var d fleet.Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14"`), &d))
	assert.Equal(t, "2025-03-14", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"14/03/2025"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20250314`), &d))
}

func TestParseDate(t *testing.T) {
	_, err := fleet.ParseDate("2025-02-30")
	assert.ErrorIs(t, err, fleet.ErrInvalidParameter)

	d, err := fleet.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "TwoDecimals", in: "170.50"},
		{name: "Integer", in: "100"},
		{name: "Negative", in: "-12.30"},
		{name: "MaxValue", in: "99999999.99"},
		{name: "ThreeDecimals", in: "1.005", wantErr: true},
		{name: "TooLarge", in: "100000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fleet.CheckAmount("monto", decimal.RequireFromString(tt.in))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var vErr *fleet.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "monto", vErr.Field)
		})
	}
}

func TestCheckNonNegativeAmount(t *testing.T) {
	assert.NoError(t, fleet.CheckNonNegativeAmount("peajes", decimal.Zero))
	assert.Error(t, fleet.CheckNonNegativeAmount("peajes", decimal.RequireFromString("-0.01")))
}

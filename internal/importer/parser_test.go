package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/importer"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Gastos(t *testing.T) {
	csv := `Gastos de flota - marzo 2025

fecha;placa;tipo_gasto;monto;comentarios
03-03-2025;1234abc;combustible;100,00;
10-03-2025;1234ABC;reparación;1.050,50;embrague
2025-03-28;5678DEF;seguro;20.00;"póliza anual"
`

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 4, rows[0].Line)
	assert.Equal(t, "1234ABC", rows[0].Plate)
	assert.Equal(t, expense.CategoryFuel, rows[0].Category)
	assert.Equal(t, "100.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, date(2025, 3, 3), rows[0].Date)
	assert.Nil(t, rows[0].Comments)

	assert.Equal(t, expense.CategoryRepair, rows[1].Category)
	assert.Equal(t, "1050.50", rows[1].Amount.StringFixed(2))
	require.NotNil(t, rows[1].Comments)
	assert.Equal(t, "embrague", *rows[1].Comments)

	assert.Equal(t, expense.CategoryInsurance, rows[2].Category)
	assert.Equal(t, date(2025, 3, 28), rows[2].Date)
	assert.Equal(t, "20.00", rows[2].Amount.StringFixed(2))
}

func TestParser_EnglishCommaSeparated(t *testing.T) {
	csv := "date,plate,category,amount\n2025-04-01,9999ZZZ,filters,35.20\n\n2025-04-02,9999ZZZ,other,4\n"

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, expense.CategoryFilters, rows[0].Category)
	assert.Equal(t, "35.20", rows[0].Amount.StringFixed(2))
	assert.Equal(t, 4, rows[1].Line)
}

func TestParser_Windows1252(t *testing.T) {
	text := "fecha;placa;tipo_gasto;monto;comentarios\n05-03-2025;1234ABC;reparación;80,00;cambio de aceite y revisión\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	rows, err := importer.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, expense.CategoryRepair, rows[0].Category)
	require.NotNil(t, rows[0].Comments)
	assert.Equal(t, "cambio de aceite y revisión", *rows[0].Comments)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantLine string
	}{
		{name: "NoHeader", csv: "a;b;c\n1;2;3\n"},
		{name: "BadDate", csv: "fecha;placa;tipo_gasto;monto\n31-02-2025;1234ABC;otros;1,00\n", wantLine: "line 2"},
		{name: "BadCategory", csv: "fecha;placa;tipo_gasto;monto\n01-02-2025;1234ABC;peajes;1,00\n", wantLine: "line 2"},
		{name: "BadAmount", csv: "fecha;placa;tipo_gasto;monto\n01-02-2025;1234ABC;otros;1,00\n01-02-2025;1234ABC;otros;abc\n", wantLine: "line 3"},
		{name: "MissingPlate", csv: "fecha;placa;tipo_gasto;monto\n01-02-2025;;otros;1,00\n", wantLine: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser().Parse(strings.NewReader(tt.csv))

			var vErr *fleet.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "archivo", vErr.Field)
			assert.Contains(t, vErr.Message, tt.wantLine)
		})
	}
}

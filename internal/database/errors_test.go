package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{
			name:      "UniquePlate",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "trucks_plate_key"},
			wantField: "placa",
		},
		{
			name:      "WrappedForeignKey",
			err:       fmt.Errorf("inserting: %w", &pgconn.PgError{Code: "23503", ConstraintName: "orders_client_id_fkey"}),
			wantField: "cliente_id",
		},
		{
			name:      "CheckConstraint",
			err:       &pgconn.PgError{Code: "23514", ConstraintName: "invoices_hourly_rate_check"},
			wantField: "precio_hora",
		},
		{
			name:      "NumericOverflow",
			err:       &pgconn.PgError{Code: "22003", ColumnName: "amount"},
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *fleet.ValidationError
			require.ErrorAs(t, database.MapError(tt.err), &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestMapError_PassThrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, database.MapError(plain))

	deadlock := &pgconn.PgError{Code: "40P01"}
	assert.Equal(t, error(deadlock), database.MapError(deadlock))
}

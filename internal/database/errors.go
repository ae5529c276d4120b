package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeNotNullViolation     = "23502"
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeStringTooLong        = "22001"
	codeNumericOutOfRange    = "22003"
	codeInvalidTextRepresent = "22P02"
)

// constraintFields maps constraint names from schema.sql to the field reported back to callers.
var constraintFields = map[string]string{
	"drivers_license_key":           "licencia",
	"drivers_email_key":             "email",
	"trucks_plate_key":              "placa",
	"trucks_driver_id_fkey":         "conductor_id",
	"clients_email_key":             "email",
	"users_username_key":            "username",
	"orders_client_id_fkey":         "cliente_id",
	"orders_truck_id_fkey":          "camion_id",
	"orders_driver_id_fkey":         "conductor_id",
	"orders_status_check":           "estado",
	"expenses_truck_id_fkey":        "camion_id",
	"expenses_category_check":       "tipo_gasto",
	"payrolls_driver_id_fkey":       "empleado_id",
	"payrolls_payment_method_check": "metodo_pago",
	"locations_truck_id_fkey":       "camion_id",
	"invoices_client_id_fkey":       "cliente_id",
	"invoices_order_id_fkey":        "pedido_id",
	"invoices_waiting_hours_check":  "horas_espera",
	"invoices_hourly_rate_check":    "precio_hora",
	"invoices_list_amount_check":    "importe_lista",
}

// MapError translates constraint violations raised by PostgreSQL into
// *fleet.ValidationError. Other errors are returned unchanged.
func MapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	field := constraintFields[pgErr.ConstraintName]

	switch pgErr.Code {
	case codeUniqueViolation:
		return &fleet.ValidationError{Field: field, Message: "a record with this value already exists"}
	case codeForeignKeyViolation:
		return &fleet.ValidationError{Field: field, Message: "referenced record does not exist"}
	case codeCheckViolation:
		return &fleet.ValidationError{Field: field, Message: "value is not allowed"}
	case codeNotNullViolation:
		return &fleet.ValidationError{Field: pgErr.ColumnName, Message: "this field is required"}
	case codeNumericOutOfRange, codeStringTooLong:
		return &fleet.ValidationError{Field: pgErr.ColumnName, Message: "value is out of range"}
	case codeInvalidTextRepresent:
		return &fleet.ValidationError{Field: pgErr.ColumnName, Message: "value has an invalid format"}
	}

	return err
}

package database_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleet/internal/client"
	clientStore "github.com/MrJamesThe3rd/fleet/internal/client/store"
	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	driverStore "github.com/MrJamesThe3rd/fleet/internal/driver/store"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/fleet/internal/expense/store"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/fleet/internal/invoice/store"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	orderStore "github.com/MrJamesThe3rd/fleet/internal/order/store"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
	truckStore "github.com/MrJamesThe3rd/fleet/internal/truck/store"
)

// openTestDB connects to FLEET_TEST_DATABASE_URL and applies the schema.
// Tests using it are skipped when the variable is not set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("FLEET_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FLEET_TEST_DATABASE_URL not set")
	}

	db, err := database.New(url)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))

	return db
}

// suffix keeps unique columns distinct across runs against the same database.
func suffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000)
}

func TestIntegration_DeletesAndSums(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tag := suffix()

	var (
		drivers  = driverStore.New(db)
		trucks   = truckStore.New(db)
		clients  = clientStore.New(db)
		orders   = orderStore.New(db)
		expenses = expenseStore.New(db)
		invoices = invoiceStore.New(db)
	)

	d := &driver.Driver{FirstName: "Ana", LastName: "Ruiz", License: "L-" + tag}
	require.NoError(t, drivers.Create(ctx, d))

	tr := &truck.Truck{Brand: "Volvo", Model: "FH", Plate: "P" + tag, Capacity: 18, Year: 2020, DriverID: &d.ID}
	require.NoError(t, trucks.Create(ctx, tr))

	c := &client.Client{Name: "Transportes Sur", Email: "sur" + tag + "@example.com"}
	require.NoError(t, clients.Create(ctx, c))

	o := &order.Order{ClientID: c.ID, TruckID: &tr.ID, DriverID: &d.ID, Description: "Porte", Status: order.StatusPending}
	require.NoError(t, orders.Create(ctx, o))

	may := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	for _, e := range []*expense.Expense{
		{TruckID: tr.ID, Category: expense.CategoryFuel, Amount: decimal.RequireFromString("120.50"), Date: may},
		{TruckID: tr.ID, Category: expense.CategoryRepair, Amount: decimal.RequireFromString("50.00"), Date: may.AddDate(0, 0, 5)},
		{TruckID: tr.ID, Category: expense.CategoryFuel, Amount: decimal.RequireFromString("99.99"), Date: may.AddDate(0, 1, 0)},
	} {
		require.NoError(t, expenses.Create(ctx, e))
	}

	t.Run("MonthSum", func(t *testing.T) {
		month := fleet.Month{Year: 2024, Month: time.May}

		total, err := expenses.Sum(ctx, expense.ListFilter{TruckID: &tr.ID, Month: &month})
		require.NoError(t, err)
		assert.Equal(t, "170.50", total.StringFixed(2))
	})

	t.Run("DriverDeleteClearsReferences", func(t *testing.T) {
		require.NoError(t, drivers.Delete(ctx, d.ID))

		got, err := trucks.Get(ctx, tr.ID)
		require.NoError(t, err)
		assert.Nil(t, got.DriverID)

		gotOrder, err := orders.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Nil(t, gotOrder.DriverID)
	})

	var invoiceID int64

	t.Run("OrderDeleteClearsInvoiceReference", func(t *testing.T) {
		done := &order.Order{ClientID: c.ID, Description: "Retorno", Status: order.StatusCompleted}
		require.NoError(t, orders.Create(ctx, done))

		inv := &invoice.Invoice{
			ClientID: c.ID, OrderID: &done.ID, Date: may, Service: "Porte", Origin: "Sevilla", Destination: "Cádiz",
			WaitingHours: decimal.RequireFromString("2.50"), HourlyRate: decimal.RequireFromString("40.00"),
			Tolls: decimal.Zero, ListAmount: decimal.RequireFromString("450.00"),
		}
		require.NoError(t, invoices.Create(ctx, inv))
		invoiceID = inv.ID

		require.NoError(t, orders.Delete(ctx, done.ID))

		got, err := invoices.Get(ctx, inv.ID)
		require.NoError(t, err)
		assert.Nil(t, got.OrderID)
		assert.Equal(t, "550.00", got.Total().StringFixed(2))
	})

	t.Run("ClientDeleteCascadesToOrders", func(t *testing.T) {
		require.NoError(t, clients.Delete(ctx, c.ID))

		_, err := orders.Get(ctx, o.ID)
		assert.ErrorIs(t, err, fleet.ErrNotFound)

		require.NotZero(t, invoiceID)

		_, err = invoices.Get(ctx, invoiceID)
		assert.ErrorIs(t, err, fleet.ErrNotFound)
	})

	t.Run("PlateLookupIgnoresCase", func(t *testing.T) {
		lower := &truck.Truck{Brand: "Scania", Model: "R", Plate: "abc-" + tag, Capacity: 12, Year: 2019}
		require.NoError(t, trucks.Create(ctx, lower))

		found, err := trucks.GetByPlates(ctx, []string{strings.ToUpper(lower.Plate)})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, lower.ID, found[0].ID)
	})

	t.Run("TruckDeleteCascadesToExpenses", func(t *testing.T) {
		require.NoError(t, trucks.Delete(ctx, tr.ID))

		list, err := expenses.List(ctx, expense.ListFilter{TruckID: &tr.ID})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleet/internal/auth"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
	fleethttp "github.com/MrJamesThe3rd/fleet/internal/http"
	authhttp "github.com/MrJamesThe3rd/fleet/internal/http/auth"
	"github.com/MrJamesThe3rd/fleet/internal/http/client"
	"github.com/MrJamesThe3rd/fleet/internal/http/driver"
	expensehttp "github.com/MrJamesThe3rd/fleet/internal/http/expense"
	"github.com/MrJamesThe3rd/fleet/internal/http/invoice"
	locationhttp "github.com/MrJamesThe3rd/fleet/internal/http/location"
	"github.com/MrJamesThe3rd/fleet/internal/http/order"
	"github.com/MrJamesThe3rd/fleet/internal/http/payroll"
	"github.com/MrJamesThe3rd/fleet/internal/http/report"
	"github.com/MrJamesThe3rd/fleet/internal/http/truck"
	"github.com/MrJamesThe3rd/fleet/internal/http/user"
	"github.com/MrJamesThe3rd/fleet/internal/importer"
	"github.com/MrJamesThe3rd/fleet/internal/location"
	fleettruck "github.com/MrJamesThe3rd/fleet/internal/truck"
)

type fixture struct {
	router    http.Handler
	token     string
	expenses  *expense.MockRepository
	trucks    *expense.MockTruckLookup
	locations *location.MockRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	issuer := auth.NewIssuer("test-secret", 5*time.Minute, time.Hour)

	token, err := issuer.Access(auth.Principal{UserID: 1, Username: "ana"})
	require.NoError(t, err)

	f := &fixture{
		token:     token,
		expenses:  expense.NewMockRepository(ctrl),
		trucks:    expense.NewMockTruckLookup(ctrl),
		locations: location.NewMockRepository(ctrl),
	}

	expenseSvc := expense.NewService(f.expenses, f.trucks)
	locationSvc := location.NewService(f.locations, location.NewMockTruckLookup(ctrl))

	f.router = fleethttp.New(fleethttp.Handlers{
		Auth:      authhttp.NewHandler(nil),
		Users:     user.NewHandler(nil),
		Drivers:   driver.NewHandler(nil),
		Trucks:    truck.NewHandler(nil),
		Clients:   client.NewHandler(nil),
		Orders:    order.NewHandler(nil),
		Expenses:  expensehttp.NewHandler(expenseSvc, importer.NewService(expenseSvc)),
		Payrolls:  payroll.NewHandler(nil),
		Locations: locationhttp.NewHandler(locationSvc),
		Invoices:  invoice.NewHandler(nil),
		Reports:   report.NewHandler(nil, nil),
	}, issuer, fleethttp.Options{AllowedOrigins: []string{"*"}})

	return f
}

func (f *fixture) get(t *testing.T, path string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestRouter_Home(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bienvenido a la API de Gestión de Camiones", decodeBody(t, rec)["message"])
}

func TestRouter_RequiresBearer(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/conductores", "/api/gastos/gastos_totales", "/api/protected"} {
		t.Run(path, func(t *testing.T) {
			rec := f.get(t, path, false)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_Protected_TrailingSlash(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/protected/", true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ana", body["user"])
	assert.Equal(t, "Acceso permitido, usuario autenticado", body["message"])
}

func TestRouter_MalformedMonth(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{
		"/api/gastos/gastos_totales?mes=2024-5",
		"/api/gastos/gastos_por_mes?camion_id=3&mes=mayo",
		"/api/gastos?mes=2024/05",
	} {
		t.Run(path, func(t *testing.T) {
			rec := f.get(t, path, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody(t, rec)["error"], "YYYY-MM")
		})
	}
}

func TestRouter_ExpensesByMonth(t *testing.T) {
	f := newFixture(t)

	month := fleet.Month{Year: 2024, Month: time.May}
	f.expenses.EXPECT().
		Sum(gomock.Any(), expense.ListFilter{TruckID: new(int64(3)), Month: &month}).
		Return(decimal.RequireFromString("170.5"), nil)

	rec := f.get(t, "/api/gastos/gastos_por_mes?camion_id=3&mes=2024-05", true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["camion_id"])
	assert.Equal(t, "2024-05", body["mes"])
	assert.Equal(t, "170.50", body["total_gasto"])
}

func TestRouter_ExpensesByMonth_MissingMonth(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/gastos/gastos_por_mes?camion_id=3", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ExpenseTotals_AllMonths(t *testing.T) {
	f := newFixture(t)

	f.expenses.EXPECT().Sum(gomock.Any(), expense.ListFilter{}).Return(decimal.Zero, nil)

	rec := f.get(t, "/api/gastos/gastos_totales", true)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Todos los meses", body["mes"])
	assert.Equal(t, "0.00", body["total_gasto"])
}

func TestRouter_ListExpenses(t *testing.T) {
	f := newFixture(t)

	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.expenses.EXPECT().List(gomock.Any(), expense.ListFilter{TruckID: new(int64(3))}).Return([]*expense.Expense{
		{ID: 1, TruckID: 3, Category: expense.CategoryFuel, Amount: decimal.RequireFromString("120.5"), Date: day},
	}, nil)
	f.trucks.EXPECT().GetMany(gomock.Any(), []int64{3}).
		Return(map[int64]*fleettruck.Truck{3: {ID: 3, Plate: "1234ABC"}}, nil)

	rec := f.get(t, "/api/gastos/?camion_id=3", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)

	assert.Equal(t, "120.50", body[0]["monto"])
	assert.Equal(t, "2024-05-10", body[0]["fecha"])
	assert.Nil(t, body[0]["comentarios"])
	assert.Equal(t, "1234ABC", body[0]["camion"].(map[string]any)["placa"])
}

func TestRouter_CreateExpense_MissingAmount(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/gastos",
		strings.NewReader(`{"camion_id": 3, "tipo_gasto": "fuel", "fecha": "2024-05-10"}`))
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "monto", decodeBody(t, rec)["field"])
}

func TestRouter_LatestLocation(t *testing.T) {
	t.Run("NoneRecorded", func(t *testing.T) {
		f := newFixture(t)

		f.locations.EXPECT().Latest(gomock.Any(), int64(9)).
			Return(nil, fmt.Errorf("no location recorded for truck 9: %w", fleet.ErrNotFound))

		rec := f.get(t, "/api/ubicaciones/ubicacion_actual?camion_id=9", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MissingTruck", func(t *testing.T) {
		f := newFixture(t)

		rec := f.get(t, "/api/ubicaciones/ubicacion_actual", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedTruck", func(t *testing.T) {
		f := newFixture(t)

		rec := f.get(t, "/api/ubicaciones/ubicacion_actual?camion_id=abc", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_UnknownID(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/gastos/abc", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

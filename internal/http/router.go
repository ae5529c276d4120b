package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fleet/internal/auth"
	"github.com/MrJamesThe3rd/fleet/internal/http/api"
	authhttp "github.com/MrJamesThe3rd/fleet/internal/http/auth"
	"github.com/MrJamesThe3rd/fleet/internal/http/client"
	"github.com/MrJamesThe3rd/fleet/internal/http/driver"
	"github.com/MrJamesThe3rd/fleet/internal/http/expense"
	"github.com/MrJamesThe3rd/fleet/internal/http/invoice"
	"github.com/MrJamesThe3rd/fleet/internal/http/location"
	"github.com/MrJamesThe3rd/fleet/internal/http/order"
	"github.com/MrJamesThe3rd/fleet/internal/http/payroll"
	"github.com/MrJamesThe3rd/fleet/internal/http/report"
	"github.com/MrJamesThe3rd/fleet/internal/http/truck"
	"github.com/MrJamesThe3rd/fleet/internal/http/user"
)

type Handlers struct {
	Auth      *authhttp.Handler
	Users     *user.Handler
	Drivers   *driver.Handler
	Trucks    *truck.Handler
	Clients   *client.Handler
	Orders    *order.Handler
	Expenses  *expense.Handler
	Payrolls  *payroll.Handler
	Locations *location.Handler
	Invoices  *invoice.Handler
	Reports   *report.Handler
}

type Options struct {
	Timeout        time.Duration // Zero disables the per-request deadline
	AllowedOrigins []string
}

func New(h Handlers, issuer *auth.Issuer, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/", home)

	router.Route("/api", func(r chi.Router) {
		r.Route("/token", h.Auth.Routes)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(issuer))

			r.Get("/protected", h.Auth.Protected)
			r.Route("/usuarios", h.Users.Routes)
			r.Route("/conductores", h.Drivers.Routes)
			r.Route("/camiones", h.Trucks.Routes)
			r.Route("/clientes", h.Clients.Routes)
			r.Route("/pedidos", h.Orders.Routes)
			r.Route("/gastos", h.Expenses.Routes)
			r.Route("/sueldos", h.Payrolls.Routes)
			r.Route("/ubicaciones", h.Locations.Routes)
			r.Route("/facturas", h.Invoices.Routes)
			r.Route("/metricas", h.Reports.Routes)
		})
	})

	return router
}

func home(w http.ResponseWriter, r *http.Request) {
	api.Message(w, r, "Bienvenido a la API de Gestión de Camiones")
}

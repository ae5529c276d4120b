package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fleet/internal/auth"
	"github.com/MrJamesThe3rd/fleet/internal/client"
	clientStore "github.com/MrJamesThe3rd/fleet/internal/client/store"
	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	driverStore "github.com/MrJamesThe3rd/fleet/internal/driver/store"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/fleet/internal/expense/store"
	"github.com/MrJamesThe3rd/fleet/internal/export"
	fleetHttp "github.com/MrJamesThe3rd/fleet/internal/http"
	authHandler "github.com/MrJamesThe3rd/fleet/internal/http/auth"
	clientHandler "github.com/MrJamesThe3rd/fleet/internal/http/client"
	driverHandler "github.com/MrJamesThe3rd/fleet/internal/http/driver"
	expenseHandler "github.com/MrJamesThe3rd/fleet/internal/http/expense"
	invoiceHandler "github.com/MrJamesThe3rd/fleet/internal/http/invoice"
	locationHandler "github.com/MrJamesThe3rd/fleet/internal/http/location"
	orderHandler "github.com/MrJamesThe3rd/fleet/internal/http/order"
	payrollHandler "github.com/MrJamesThe3rd/fleet/internal/http/payroll"
	reportHandler "github.com/MrJamesThe3rd/fleet/internal/http/report"
	truckHandler "github.com/MrJamesThe3rd/fleet/internal/http/truck"
	userHandler "github.com/MrJamesThe3rd/fleet/internal/http/user"
	"github.com/MrJamesThe3rd/fleet/internal/importer"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/fleet/internal/invoice/store"
	"github.com/MrJamesThe3rd/fleet/internal/location"
	locationStore "github.com/MrJamesThe3rd/fleet/internal/location/store"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	orderStore "github.com/MrJamesThe3rd/fleet/internal/order/store"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
	payrollStore "github.com/MrJamesThe3rd/fleet/internal/payroll/store"
	"github.com/MrJamesThe3rd/fleet/internal/report"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
	truckStore "github.com/MrJamesThe3rd/fleet/internal/truck/store"
	"github.com/MrJamesThe3rd/fleet/internal/user"
	userStore "github.com/MrJamesThe3rd/fleet/internal/user/store"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")

	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	denylist, err := auth.NewRedisDenylist(ctx, auth.RedisConfig{
		Enabled:  cfg.Redis.Enabled,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer denylist.Close()

	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	var (
		userService     = user.NewService(userStore.New(db))
		authService     = auth.NewService(userService, issuer, denylist, cfg.Auth.RotateRefresh)
		driverService   = driver.NewService(driverStore.New(db))
		truckService    = truck.NewService(truckStore.New(db), driverService)
		clientService   = client.NewService(clientStore.New(db))
		orderService    = order.NewService(orderStore.New(db), clientService, truckService, driverService)
		expenseService  = expense.NewService(expenseStore.New(db), truckService)
		payrollService  = payroll.NewService(payrollStore.New(db), driverService)
		locationService = location.NewService(locationStore.New(db), truckService)
		invoiceService  = invoice.NewService(invoiceStore.New(db), clientService, orderService)
		importService   = importer.NewService(expenseService)
		reportService   = report.NewService(orderService, expenseService, payrollService)
		exportService   = export.NewService(expenseService, payrollService, invoiceService)
	)

	handlers := fleetHttp.Handlers{
		Auth:      authHandler.NewHandler(authService),
		Users:     userHandler.NewHandler(userService),
		Drivers:   driverHandler.NewHandler(driverService),
		Trucks:    truckHandler.NewHandler(truckService),
		Clients:   clientHandler.NewHandler(clientService),
		Orders:    orderHandler.NewHandler(orderService),
		Expenses:  expenseHandler.NewHandler(expenseService, importService),
		Payrolls:  payrollHandler.NewHandler(payrollService),
		Locations: locationHandler.NewHandler(locationService),
		Invoices:  invoiceHandler.NewHandler(invoiceService),
		Reports:   reportHandler.NewHandler(reportService, exportService),
	}

	router := fleetHttp.New(handlers, issuer, fleetHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", server.Addr, "env", cfg.App.Env)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}

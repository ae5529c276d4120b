package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fleet/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fleet/internal/client"
	clientStore "github.com/MrJamesThe3rd/fleet/internal/client/store"
	"github.com/MrJamesThe3rd/fleet/internal/config"
	"github.com/MrJamesThe3rd/fleet/internal/database"
	"github.com/MrJamesThe3rd/fleet/internal/driver"
	driverStore "github.com/MrJamesThe3rd/fleet/internal/driver/store"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/fleet/internal/expense/store"
	"github.com/MrJamesThe3rd/fleet/internal/export"
	"github.com/MrJamesThe3rd/fleet/internal/importer"
	"github.com/MrJamesThe3rd/fleet/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/fleet/internal/invoice/store"
	"github.com/MrJamesThe3rd/fleet/internal/logging"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	orderStore "github.com/MrJamesThe3rd/fleet/internal/order/store"
	"github.com/MrJamesThe3rd/fleet/internal/payroll"
	payrollStore "github.com/MrJamesThe3rd/fleet/internal/payroll/store"
	"github.com/MrJamesThe3rd/fleet/internal/report"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
	truckStore "github.com/MrJamesThe3rd/fleet/internal/truck/store"
)

type model struct {
	reportService  *report.Service
	truckService   *truck.Service
	expenseService *expense.Service
	importService  *importer.Service
	exportService  *export.Service

	currentView View

	summaryView view.SummaryModel
	trucksView  view.TrucksModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewSummary View = 1
	ViewTrucks  View = 2
	ViewImport  View = 3
	ViewExport  View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea, so logs go to stderr.
	logging.New(cfg.App.Env, os.Stderr)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		driverSvc  = driver.NewService(driverStore.New(db))
		truckSvc   = truck.NewService(truckStore.New(db), driverSvc)
		clientSvc  = client.NewService(clientStore.New(db))
		orderSvc   = order.NewService(orderStore.New(db), clientSvc, truckSvc, driverSvc)
		expenseSvc = expense.NewService(expenseStore.New(db), truckSvc)
		payrollSvc = payroll.NewService(payrollStore.New(db), driverSvc)
		invoiceSvc = invoice.NewService(invoiceStore.New(db), clientSvc, orderSvc)
	)

	return model{
		reportService:  report.NewService(orderSvc, expenseSvc, payrollSvc),
		truckService:   truckSvc,
		expenseService: expenseSvc,
		importService:  importer.NewService(expenseSvc),
		exportService:  export.NewService(expenseSvc, payrollSvc, invoiceSvc),
		currentView:    ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.reportService)

				return m, m.summaryView.Init()
			case "2":
				m.currentView = ViewTrucks
				m.trucksView = view.NewTrucksModel(m.truckService, m.expenseService)

				return m, m.trucksView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewTrucks:
		var newModel tea.Model
		newModel, cmd = m.trucksView.Update(msg)
		m.trucksView = newModel.(view.TrucksModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Fleet TUI\n\n" +
				"1. Summary\n" +
				"2. Trucks & Expenses\n" +
				"3. Import Expenses\n" +
				"4. Export Report\n\n" +
				"q. Quit",
		)
	case ViewSummary:
		current = m.summaryView
	case ViewTrucks:
		current = m.trucksView
	case ViewImport:
		current = m.importView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	header := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(current.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, header, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

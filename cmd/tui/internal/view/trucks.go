package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/truck"
)

type trucksState int

const (
	trucksStateBrowse trucksState = iota
	trucksStateExpense
)

type TrucksModel struct {
	truckService   *truck.Service
	expenseService *expense.Service

	state  trucksState
	table  table.Model
	trucks []*truck.Truck
	form   *huh.Form

	loading bool
	err     error
	status  string

	draft *expenseDraft
}

// expenseDraft holds the form bindings. It lives behind a pointer so copies of the model share it.
type expenseDraft struct {
	category expense.Category
	amount   string
	date     string
	comments string
}

func NewTrucksModel(truckSvc *truck.Service, expenseSvc *expense.Service) TrucksModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Placa", Width: 10},
		{Title: "Marca", Width: 14},
		{Title: "Modelo", Width: 14},
		{Title: "Año", Width: 6},
		{Title: "Capacidad", Width: 10},
		{Title: "Conductor", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TrucksModel{
		truckService:   truckSvc,
		expenseService: expenseSvc,
		table:          t,
		loading:        true,
	}
}

func (m TrucksModel) Title() string { return "Trucks" }

func (m TrucksModel) ShortHelp() string {
	if m.state == trucksStateExpense {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new expense | r: refresh"
}

func (m TrucksModel) Init() tea.Cmd {
	return m.loadTrucksCmd()
}

func (m TrucksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTrucksMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.trucks = msg.trucks
		m.refreshTable()

		return m, nil

	case expenseSavedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error saving: %v", msg.err))
		} else {
			m.status = successStyle.Render(fmt.Sprintf("Gasto %d registrado (%s).", msg.expense.ID, FormatAmount(msg.expense.Amount)))
		}

		m.state = trucksStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case trucksStateBrowse:
		return m.updateBrowse(msg)
	case trucksStateExpense:
		return m.updateExpense(msg)
	}

	return m, nil
}

func (m TrucksModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTrucksCmd()
		case "n":
			return m.enterExpenseMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TrucksModel) enterExpenseMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.trucks) {
		return m, nil
	}

	m.draft = &expenseDraft{category: expense.CategoryFuel, date: FormatDate(time.Now())}
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[expense.Category]().
				Key("tipo_gasto").
				Title("Tipo de gasto").
				Options(
					huh.NewOption("Combustible", expense.CategoryFuel),
					huh.NewOption("Reparación", expense.CategoryRepair),
					huh.NewOption("Filtros", expense.CategoryFilters),
					huh.NewOption("Seguro", expense.CategoryInsurance),
					huh.NewOption("Otro", expense.CategoryOther),
				).
				Value(&m.draft.category),

			huh.NewInput().
				Key("monto").
				Title("Monto").
				Placeholder("120.50").
				Value(&m.draft.amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a number")
					}

					if !d.IsPositive() {
						return fmt.Errorf("must be greater than zero")
					}

					return nil
				}),

			huh.NewInput().
				Key("fecha").
				Title("Fecha").
				Placeholder("YYYY-MM-DD").
				Value(&m.draft.date).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}

					return nil
				}),

			huh.NewText().
				Key("comentarios").
				Title("Comentarios").
				Value(&m.draft.comments),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = trucksStateExpense
	m.table.Blur()

	return m, m.form.Init()
}

func (m TrucksModel) updateExpense(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = trucksStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveExpenseCmd()
}

func (m TrucksModel) View() string {
	if m.loading {
		return padded.Render("Loading trucks...")
	}

	if m.err != nil {
		return padded.Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == trucksStateExpense && m.form != nil {
		plate := ""
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.trucks) {
			plate = m.trucks[idx].Plate
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Nuevo gasto\n\nCamión: %s\n\n%s", accentStyle.Render(plate), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TrucksModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.trucks))

	for _, t := range m.trucks {
		driverName := "-"
		if t.Driver != nil {
			driverName = t.Driver.FullName()
		}

		rows = append(rows, table.Row{
			fmt.Sprint(t.ID),
			t.Plate,
			t.Brand,
			t.Model,
			fmt.Sprint(t.Year),
			fmt.Sprintf("%.2f", t.Capacity),
			driverName,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadTrucksMsg struct {
	trucks []*truck.Truck
	err    error
}

func (m TrucksModel) loadTrucksCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		trucks, err := m.truckService.List(ctx)

		return loadTrucksMsg{trucks: trucks, err: err}
	}
}

type expenseSavedMsg struct {
	expense *expense.Expense
	err     error
}

func (m TrucksModel) saveExpenseCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.trucks) {
		return nil
	}

	// The form already validated both fields.
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.draft.amount))
	date, _ := time.Parse(time.DateOnly, m.draft.date)

	params := expense.CreateParams{
		TruckID:  m.trucks[idx].ID,
		Category: m.draft.category,
		Amount:   amount,
		Date:     date,
	}

	if comments := strings.TrimSpace(m.draft.comments); comments != "" {
		params.Comments = &comments
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.expenseService.Create(ctx, params)

		return expenseSavedMsg{expense: e, err: err}
	}
}

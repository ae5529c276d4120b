package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStatePath importState = iota
	importStateImporting
	importStateResult
)

// ImportModel reads a semicolon separated expense file from disk and stores every row.
type ImportModel struct {
	importService *importer.Service

	state    importState
	input    textinput.Model
	spinner  spinner.Model
	imported []*expense.Expense

	status string
	err    error
}

func NewImportModel(svc *importer.Service) ImportModel {
	ti := textinput.New()
	ti.Placeholder = "./gastos.csv"
	ti.Prompt = "Archivo: "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	return ImportModel{
		importService: svc,
		input:         ti,
		spinner:       s,
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateImporting:
		return "Importing..."
	case importStateResult:
		return "Esc: back"
	}

	return "Esc: back | Enter: import"
}

func (m ImportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.imported = msg.expenses
		m.status = fmt.Sprintf("Imported %d expenses.", len(msg.expenses))

		return m, nil
	}

	switch m.state {
	case importStatePath:
		return m.updatePath(msg)
	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult:
		m.state = importStatePath
		m.err = nil
		m.status = ""
		m.imported = nil
		m.input.Reset()

		return m, textinput.Blink
	case importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}

		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, tea.Batch(m.spinner.Tick, m.importCmd(path))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStatePath:
		return padded.Render(
			"Semicolon separated file with fecha;placa;tipo_gasto;monto[;comentarios]\n\n" + m.input.View(),
		)
	case importStateImporting:
		return padded.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.status))
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		return padded.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	var total strings.Builder

	byPlate := make(map[string]int)
	for _, e := range m.imported {
		if e.Truck != nil {
			byPlate[e.Truck.Plate]++
		}
	}

	for plate, n := range byPlate {
		fmt.Fprintf(&total, "  %-10s %d\n", plate, n)
	}

	return padded.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Render(m.status),
			"",
			total.String(),
			"(Esc to go back)",
		),
	)
}

// Messages

type importResultMsg struct {
	expenses []*expense.Expense
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		expenses, err := m.importService.Import(ctx, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{expenses: expenses}
	}
}

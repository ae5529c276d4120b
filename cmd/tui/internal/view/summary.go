package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/order"
	"github.com/MrJamesThe3rd/fleet/internal/report"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(1, 3).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// SummaryModel shows the all-time dashboard metrics.
type SummaryModel struct {
	reportService *report.Service

	loading    bool
	err        error
	summary    report.Summary
	byStatus   []order.StatusCount
	byCategory []expense.CategoryTotal
}

func NewSummaryModel(svc *report.Service) SummaryModel {
	return SummaryModel{reportService: svc, loading: true}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.byStatus = msg.byStatus
		m.byCategory = msg.byCategory

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return padded.Render("Loading summary...")
	}

	if m.err != nil {
		return padded.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Pedidos", fmt.Sprint(m.summary.TotalOrders)),
		card("Gastos", FormatAmount(m.summary.TotalExpenses)),
		card("Sueldos", FormatAmount(m.summary.TotalPayroll)),
	)

	var status strings.Builder
	for _, s := range m.byStatus {
		fmt.Fprintf(&status, "%-12s %6d\n", s.Status, s.Total)
	}

	var category strings.Builder
	for _, c := range m.byCategory {
		fmt.Fprintf(&category, "%-12s %12s\n", c.Category, FormatAmount(c.Total))
	}

	breakdown := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(accentStyle.Render("Pedidos por estado")+"\n\n"+status.String()),
		cardStyle.Render(accentStyle.Render("Gastos por tipo")+"\n\n"+category.String()),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, cards, breakdown))
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

type summaryLoadedMsg struct {
	summary    report.Summary
	byStatus   []order.StatusCount
	byCategory []expense.CategoryTotal
	err        error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Summary(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		byStatus, err := m.reportService.OrdersByStatus(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		byCategory, err := m.reportService.ExpensesByCategory(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		return summaryLoadedMsg{summary: summary, byStatus: byStatus, byCategory: byCategory}
	}
}

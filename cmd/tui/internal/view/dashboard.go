package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/report"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// Snapshot reads the current state for the dashboard figures.
type Snapshot interface {
	Products() []catalog.Product
	Clients() []client.Client
	Sales() []sale.Sale
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Margin(0, 1)

	cardLabelStyle = lipgloss.NewStyle().Faint(true)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

type DashboardModel struct {
	CommonModel
	snapshot Snapshot

	months   []string
	selected int
	summary  report.Summary
}

func NewDashboardModel(snapshot Snapshot) DashboardModel {
	return DashboardModel{snapshot: snapshot}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | ←/→: change month"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.months = msg.months
		m.summary = msg.summary

		if m.selected >= len(m.months) {
			m.selected = 0
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			// Months are newest first, so left goes back in time.
			if m.selected < len(m.months)-1 {
				m.selected++
				return m, m.loadCmd()
			}
		case "right", "l":
			if m.selected > 0 {
				m.selected--
				return m, m.loadCmd()
			}
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	month := "sin ventas"
	if len(m.months) > 0 {
		month = m.months[m.selected]
	}

	header := lipgloss.NewStyle().Bold(true).Render("Resumen") +
		lipgloss.NewStyle().Faint(true).Render("  "+month)

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Ingresos del mes", FormatMoney(m.summary.Income)),
		card("Operaciones", fmt.Sprintf("%d", m.summary.Operations)),
		card("Ventas a crédito", fmt.Sprintf("%d", m.summary.CreditSales)),
	)

	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Deuda pendiente", FormatMoney(m.summary.OutstandingDebt)),
		card("Valor del inventario", FormatMoney(m.summary.StockValue)),
	)

	var b strings.Builder

	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(row1)
	b.WriteString("\n")
	b.WriteString(row2)
	b.WriteString("\n")

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func card(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

// Messages

type dashboardLoadedMsg struct {
	months  []string
	summary report.Summary
}

func (m DashboardModel) loadCmd() tea.Cmd {
	selected := m.selected
	snapshot := m.snapshot

	return func() tea.Msg {
		sales := snapshot.Sales()
		months := report.Months(sales)

		monthSales := sales
		if len(months) > 0 {
			if selected >= len(months) {
				selected = 0
			}

			monthSales = report.SalesByMonth(sales, months[selected])
		}

		summary := report.Summarize(monthSales, snapshot.Clients(), snapshot.Products())

		return dashboardLoadedMsg{months: months, summary: summary}
	}
}

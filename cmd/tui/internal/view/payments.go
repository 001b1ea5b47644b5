package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/report"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// PaymentLog is the read side of the payments history.
type PaymentLog interface {
	Payments() []sale.Payment
}

type paymentsState int

const (
	paymentsStateBrowse paymentsState = iota
	paymentsStateForm
	paymentsStateFilter
)

type PaymentsModel struct {
	CommonModel
	clientSvc *client.Service
	engine    *sale.Engine
	log       PaymentLog

	state  paymentsState
	table  table.Model
	form   *huh.Form
	status string

	formClientID string
	formAmount   string
	clientFilter string
}

func NewPaymentsModel(clientSvc *client.Service, engine *sale.Engine, log PaymentLog) PaymentsModel {
	t := table.New(
		table.WithColumns(paymentsColumns(60)),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("205")).Bold(true)
	t.SetStyles(styles)

	return PaymentsModel{
		clientSvc: clientSvc,
		engine:    engine,
		log:       log,
		table:     t,
	}
}

func paymentsColumns(width int) []table.Column {
	nameWidth := width - 26
	if nameWidth < 16 {
		nameWidth = 16
	}

	return []table.Column{
		{Title: "Fecha", Width: 10},
		{Title: "Cliente", Width: nameWidth},
		{Title: "Monto", Width: 12},
	}
}

func (m PaymentsModel) Title() string { return "Payments" }

func (m PaymentsModel) ShortHelp() string {
	if m.state != paymentsStateBrowse {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: record payment | /: filter by client"
}

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentsLoadedMsg:
		m.table.SetRows(msg.rows)
		return m, nil

	case paymentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Abono de %s registrado para %s.",
				FormatMoney(msg.payment.Amount), msg.payment.ClientName)
		}

		m.state = paymentsStateBrowse
		m.form = nil

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetColumns(paymentsColumns(msg.Width - 6))
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	if m.state != paymentsStateBrowse {
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m PaymentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startForm()
		case "/":
			return m.startFilter()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PaymentsModel) startForm() (tea.Model, tea.Cmd) {
	debtors := m.clientSvc.Debtors()
	if len(debtors) == 0 {
		m.status = "No hay clientes con deuda."
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(debtors))

	for _, c := range debtors {
		label := fmt.Sprintf("%s (debe %s)", c.Name, FormatMoney(c.Debt))
		options = append(options, huh.NewOption(label, c.ID.String()))
	}

	m.formClientID = ""
	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("client").
				Title("Cliente").
				Options(options...).
				Value(&m.formClientID),

			huh.NewInput().
				Key("amount").
				Title("Monto").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(validateMoney),
		),
	).WithWidth(55).WithShowHelp(false)

	m.state = paymentsStateForm
	m.status = ""

	return m, m.form.Init()
}

func (m PaymentsModel) startFilter() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("client").
				Title("Cliente contiene").
				Value(&m.clientFilter),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentsStateFilter
	m.status = ""

	return m, m.form.Init()
}

func (m PaymentsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = paymentsStateBrowse
			m.form = nil

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

	if m.state == paymentsStateFilter {
		m.state = paymentsStateBrowse
		m.form = nil

		return m, m.loadCmd()
	}

	return m, m.saveCmd()
}

func (m PaymentsModel) View() string {
	if m.state != paymentsStateBrowse && m.form != nil {
		title := "Registrar abono"
		if m.state == paymentsStateFilter {
			title = "Filtrar abonos"
		}

		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + m.form.View())
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n"
	}

	title := lipgloss.NewStyle().Bold(true).Render("Abonos")
	if m.clientFilter != "" {
		title += lipgloss.NewStyle().Faint(true).Render("  cliente: " + m.clientFilter)
	}

	return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + statusLine + m.table.View())
}

// Messages

type paymentsLoadedMsg struct {
	rows []table.Row
}

func (m PaymentsModel) loadCmd() tea.Cmd {
	filter := m.clientFilter

	return func() tea.Msg {
		payments := report.PaymentsByClient(m.log.Payments(), filter)

		rows := make([]table.Row, len(payments))
		for i, p := range payments {
			rows[i] = table.Row{FormatDate(p.Date), p.ClientName, FormatMoney(p.Amount)}
		}

		return paymentsLoadedMsg{rows: rows}
	}
}

type paymentSavedMsg struct {
	payment sale.Payment
	err     error
}

func (m PaymentsModel) saveCmd() tea.Cmd {
	clientStr := m.formClientID
	amountStr := m.formAmount
	engine := m.engine

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		id, err := uuid.Parse(clientStr)
		if err != nil {
			return paymentSavedMsg{err: err}
		}

		amount, err := ParseMoney(amountStr)
		if err != nil {
			return paymentSavedMsg{err: err}
		}

		p, err := engine.CommitPayment(ctx, id, amount)

		return paymentSavedMsg{payment: p, err: err}
	}
}

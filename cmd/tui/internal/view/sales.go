package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/report"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// SaleLog is the read side of the sales history.
type SaleLog interface {
	Sales() []sale.Sale
}

type salesState int

const (
	salesStateBrowse salesState = iota
	salesStateCart
	salesStateAddItem
	salesStateCheckout
	salesStateFilter
)

type SalesModel struct {
	CommonModel
	catalogSvc *catalog.Service
	clientSvc  *client.Service
	engine     *sale.Engine
	log        SaleLog

	state  salesState
	table  table.Model
	form   *huh.Form
	cart   []sale.CartItem
	status string

	formProductID string
	formQuantity  string
	formType      string
	formClientID  string
	formCashPaid  string
	clientFilter  string
}

func NewSalesModel(catalogSvc *catalog.Service, clientSvc *client.Service, engine *sale.Engine, log SaleLog) SalesModel {
	t := table.New(
		table.WithColumns(salesColumns(60)),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("205")).Bold(true)
	t.SetStyles(styles)

	return SalesModel{
		catalogSvc: catalogSvc,
		clientSvc:  clientSvc,
		engine:     engine,
		log:        log,
		table:      t,
	}
}

func salesColumns(width int) []table.Column {
	nameWidth := width - 34
	if nameWidth < 16 {
		nameWidth = 16
	}

	return []table.Column{
		{Title: "Fecha", Width: 10},
		{Title: "Cliente", Width: nameWidth},
		{Title: "Tipo", Width: 8},
		{Title: "Total", Width: 12},
	}
}

func (m SalesModel) Title() string { return "Sales" }

func (m SalesModel) ShortHelp() string {
	switch m.state {
	case salesStateCart:
		return "a: add item | c: checkout | x: remove last | Esc: discard"
	case salesStateAddItem, salesStateCheckout, salesStateFilter:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new sale | /: filter by client"
}

func (m SalesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case salesLoadedMsg:
		m.table.SetRows(msg.rows)
		return m, nil

	case saleCommittedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = salesStateCart

			return m, nil
		}

		m.status = fmt.Sprintf("Venta registrada: %s", FormatMoney(msg.sale.TotalPrice))
		m.cart = nil
		m.state = salesStateBrowse
		m.form = nil

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetColumns(salesColumns(msg.Width - 6))
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case salesStateBrowse:
		return m.updateBrowse(msg)
	case salesStateCart:
		return m.updateCart(msg)
	case salesStateAddItem, salesStateCheckout, salesStateFilter:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m SalesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			m.state = salesStateCart
			m.status = ""

			return m, nil
		case "/":
			return m.startFilter()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SalesModel) updateCart(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.cart = nil
			m.state = salesStateBrowse

			return m, nil
		case "a":
			return m.startAddItem()
		case "x":
			if len(m.cart) > 0 {
				m.cart = m.cart[:len(m.cart)-1]
			}

			return m, nil
		case "c":
			if len(m.cart) == 0 {
				m.status = "El carrito está vacío."
				return m, nil
			}

			return m.startCheckout()
		}
	}

	return m, nil
}

func (m SalesModel) startAddItem() (tea.Model, tea.Cmd) {
	products := m.catalogSvc.List()
	if len(products) == 0 {
		m.status = "No hay productos en el catálogo."
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(products))

	for _, p := range products {
		label := fmt.Sprintf("%s  %s (quedan %d)", p.Name, FormatMoney(p.Price), p.Stock)
		options = append(options, huh.NewOption(label, p.ID.String()))
	}

	m.formProductID = ""
	m.formQuantity = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Producto").
				Options(options...).
				Value(&m.formProductID),

			huh.NewInput().
				Key("quantity").
				Title("Cantidad").
				Value(&m.formQuantity).
				Validate(validateCount),
		),
	).WithWidth(55).WithShowHelp(false)

	m.state = salesStateAddItem
	m.status = ""

	return m, m.form.Init()
}

func (m SalesModel) startCheckout() (tea.Model, tea.Cmd) {
	clients := m.clientSvc.List()

	clientOptions := make([]huh.Option[string], 0, len(clients)+1)
	clientOptions = append(clientOptions, huh.NewOption("(Cliente General)", ""))

	for _, c := range clients {
		label := c.Name
		if c.Debt > 0 {
			label = fmt.Sprintf("%s (debe %s)", c.Name, FormatMoney(c.Debt))
		}

		clientOptions = append(clientOptions, huh.NewOption(label, c.ID.String()))
	}

	m.formType = string(sale.TypeNormal)
	m.formClientID = ""
	m.formCashPaid = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Tipo de venta").
				Options(
					huh.NewOption("Contado", string(sale.TypeNormal)),
					huh.NewOption("Crédito", string(sale.TypeCredit)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("client").
				Title("Cliente").
				Options(clientOptions...).
				Value(&m.formClientID),

			huh.NewInput().
				Key("cash_paid").
				Title("Abono inicial (solo crédito)").
				Placeholder("0.00").
				Value(&m.formCashPaid).
				Validate(validateOptionalMoney),
		),
	).WithWidth(55).WithShowHelp(false)

	m.state = salesStateCheckout
	m.status = ""

	return m, m.form.Init()
}

func (m SalesModel) startFilter() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("client").
				Title("Cliente contiene").
				Value(&m.clientFilter),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = salesStateFilter
	m.status = ""

	return m, m.form.Init()
}

func (m SalesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			if m.state == salesStateFilter {
				m.state = salesStateBrowse
			} else {
				m.state = salesStateCart
			}

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

	switch m.state {
	case salesStateAddItem:
		return m.addItem()
	case salesStateFilter:
		m.state = salesStateBrowse
		m.form = nil

		return m, m.loadCmd()
	}

	return m, m.commitCmd()
}

func (m SalesModel) addItem() (tea.Model, tea.Cmd) {
	productID, err := uuid.Parse(m.formProductID)
	if err != nil {
		m.status = "Producto inválido."
		m.state = salesStateCart
		m.form = nil

		return m, nil
	}

	qty, err := ParseCount(m.formQuantity)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		m.state = salesStateCart
		m.form = nil

		return m, nil
	}

	m.cart = append(m.cart, sale.CartItem{ProductID: productID, Quantity: qty})
	m.state = salesStateCart
	m.form = nil

	return m, nil
}

func (m SalesModel) View() string {
	if m.state != salesStateBrowse && m.state != salesStateCart && m.form != nil {
		title := "Agregar producto"

		switch m.state {
		case salesStateCheckout:
			title = "Cobrar"
		case salesStateFilter:
			title = "Filtrar ventas"
		}

		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + m.form.View())
	}

	if m.state == salesStateCart {
		return lipgloss.NewStyle().Padding(1).Render(m.cartView())
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n"
	}

	title := lipgloss.NewStyle().Bold(true).Render("Ventas")
	if m.clientFilter != "" {
		title += lipgloss.NewStyle().Faint(true).Render("  cliente: " + m.clientFilter)
	}

	return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + statusLine + m.table.View())
}

func (m SalesModel) cartView() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Nueva venta"))
	b.WriteString("\n\n")

	if len(m.cart) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("Carrito vacío. Presiona 'a' para agregar."))
		b.WriteString("\n")
	}

	products := m.catalogSvc.List()

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total int64

	for _, line := range m.cart {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}

		subtotal := p.Price * int64(line.Quantity)
		total += subtotal

		b.WriteString(fmt.Sprintf("  %dx %s  %s\n", line.Quantity, p.Name, FormatMoney(subtotal)))
	}

	if len(m.cart) > 0 {
		b.WriteString("\n")
		b.WriteString("  Total: " + lipgloss.NewStyle().Bold(true).Render(FormatMoney(total)))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

// Messages

type salesLoadedMsg struct {
	rows []table.Row
}

func (m SalesModel) loadCmd() tea.Cmd {
	filter := m.clientFilter

	return func() tea.Msg {
		sales := report.SalesByClient(m.log.Sales(), filter)

		rows := make([]table.Row, len(sales))
		for i, s := range sales {
			kind := "Contado"
			if s.Type == sale.TypeCredit {
				kind = "Crédito"
			}

			rows[i] = table.Row{FormatDate(s.Date), s.ClientName, kind, FormatMoney(s.TotalPrice)}
		}

		return salesLoadedMsg{rows: rows}
	}
}

type saleCommittedMsg struct {
	sale sale.Sale
	err  error
}

func (m SalesModel) commitCmd() tea.Cmd {
	cart := append([]sale.CartItem(nil), m.cart...)
	saleType := sale.Type(m.formType)
	clientStr := m.formClientID
	cashStr := m.formCashPaid
	engine := m.engine

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		params := sale.SaleParams{Items: cart, Type: saleType}

		if clientStr != "" {
			id, err := uuid.Parse(clientStr)
			if err != nil {
				return saleCommittedMsg{err: err}
			}

			params.ClientID = &id
		}

		if strings.TrimSpace(cashStr) != "" {
			cash, err := ParseMoney(cashStr)
			if err != nil {
				return saleCommittedMsg{err: err}
			}

			params.CashPaid = cash
		}

		s, err := engine.CommitSale(ctx, params)

		return saleCommittedMsg{sale: s, err: err}
	}
}

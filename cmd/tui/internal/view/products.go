package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hvaldez/gestorpro/internal/catalog"
)

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateForm
)

type productItem struct {
	product catalog.Product
}

func (i productItem) Title() string {
	stock := fmt.Sprintf("x%d", i.product.Stock)
	if i.product.Stock == 0 {
		stock = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("agotado")
	}

	return fmt.Sprintf("%s  %s  %s", i.product.Name, FormatMoney(i.product.Price), stock)
}

func (i productItem) Description() string { return i.product.Description }
func (i productItem) FilterValue() string { return i.product.Name }

type ProductsModel struct {
	CommonModel
	catalogSvc *catalog.Service

	state   productsState
	list    list.Model
	form    *huh.Form
	editing *catalog.Product
	status  string

	// Form field bindings
	formName  string
	formPrice string
	formStock string
	formDesc  string
}

func NewProductsModel(catalogSvc *catalog.Service) ProductsModel {
	l := list.New([]list.Item{}, productItemDelegate{}, 0, 0)
	l.Title = "Productos"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return ProductsModel{
		catalogSvc: catalogSvc,
		list:       l,
	}
}

func (m ProductsModel) Title() string { return "Products" }

func (m ProductsModel) ShortHelp() string {
	if m.state == productsStateForm {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | enter: edit | d: delete | /: filter"
}

func (m ProductsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.refreshItems(msg.products)
		return m, nil

	case productSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Guardado."
		}

		m.state = productsStateBrowse
		m.form = nil

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil
	}

	switch m.state {
	case productsStateBrowse:
		return m.updateBrowse(msg)
	case productsStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		filtering := m.list.FilterState() == list.Filtering

		switch keyMsg.String() {
		case "esc":
			if filtering {
				break
			}

			return m, Back
		case "n":
			if filtering {
				break
			}

			return m.startForm(nil)
		case "enter":
			if filtering {
				break
			}

			if item, ok := m.list.SelectedItem().(productItem); ok {
				p := item.product
				return m.startForm(&p)
			}
		case "d":
			if filtering {
				break
			}

			if item, ok := m.list.SelectedItem().(productItem); ok {
				return m, m.deleteCmd(item.product)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ProductsModel) startForm(p *catalog.Product) (tea.Model, tea.Cmd) {
	m.editing = p

	if p != nil {
		m.formName = p.Name
		m.formPrice = strconv.FormatFloat(float64(p.Price)/100, 'f', 2, 64)
		m.formStock = strconv.Itoa(p.Stock)
		m.formDesc = p.Description
	} else {
		m.formName = ""
		m.formPrice = ""
		m.formStock = ""
		m.formDesc = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nombre").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el nombre es obligatorio")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Precio").
				Placeholder("0.00").
				Value(&m.formPrice).
				Validate(validateMoney),

			huh.NewInput().
				Key("stock").
				Title("Stock").
				Value(&m.formStock).
				Validate(validateCount),

			huh.NewInput().
				Key("description").
				Title("Descripción (opcional)").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = productsStateForm

	return m, m.form.Init()
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productsStateBrowse
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

	return m, m.saveCmd()
}

func (m ProductsModel) View() string {
	if m.state == productsStateForm && m.form != nil {
		title := "Nuevo producto"
		if m.editing != nil {
			title = "Editar producto"
		}

		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + m.form.View())
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *ProductsModel) refreshItems(products []catalog.Product) {
	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p}
	}

	m.list.SetItems(items)
}

// Messages

type productsLoadedMsg struct {
	products []catalog.Product
}

func (m ProductsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return productsLoadedMsg{products: m.catalogSvc.List()}
	}
}

type productSavedMsg struct {
	err error
}

func (m ProductsModel) saveCmd() tea.Cmd {
	editing := m.editing
	name := m.formName
	priceStr := m.formPrice
	stockStr := m.formStock
	desc := m.formDesc
	svc := m.catalogSvc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		price, err := ParseMoney(priceStr)
		if err != nil {
			return productSavedMsg{err: err}
		}

		stock, err := ParseCount(stockStr)
		if err != nil {
			return productSavedMsg{err: err}
		}

		if editing == nil {
			_, err := svc.Create(ctx, catalog.CreateParams{
				Name:        name,
				Price:       price,
				Stock:       stock,
				Description: desc,
			})

			return productSavedMsg{err: err}
		}

		err = svc.Update(ctx, editing.ID, catalog.UpdateParams{
			Name:        &name,
			Price:       &price,
			Stock:       &stock,
			Description: &desc,
		})

		return productSavedMsg{err: err}
	}
}

func (m ProductsModel) deleteCmd(p catalog.Product) tea.Cmd {
	svc := m.catalogSvc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return productSavedMsg{err: svc.Delete(ctx, p.ID)}
	}
}

// productItemDelegate renders items in the list.
type productItemDelegate struct{}

func (d productItemDelegate) Height() int                             { return 2 }
func (d productItemDelegate) Spacing() int                            { return 0 }
func (d productItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d productItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(productItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc := i.Description(); desc != "" {
		fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
	} else {
		fmt.Fprintln(w)
	}
}

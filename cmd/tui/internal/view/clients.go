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

	"github.com/hvaldez/gestorpro/internal/client"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateForm
)

type clientItem struct {
	client client.Client
}

func (i clientItem) Title() string {
	debt := "sin deuda"
	if i.client.Debt != 0 {
		debt = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).
			Render("debe " + FormatMoney(i.client.Debt))
	}

	return fmt.Sprintf("%s  %s", i.client.Name, debt)
}

func (i clientItem) Description() string {
	if i.client.InitialDebt == 0 {
		return ""
	}

	return "deuda inicial " + FormatMoney(i.client.InitialDebt)
}

func (i clientItem) FilterValue() string { return i.client.Name }

type ClientsModel struct {
	CommonModel
	clientSvc *client.Service

	state   clientsState
	list    list.Model
	form    *huh.Form
	editing *client.Client
	status  string

	formName string
	formDebt string
}

func NewClientsModel(clientSvc *client.Service) ClientsModel {
	l := list.New([]list.Item{}, clientItemDelegate{}, 0, 0)
	l.Title = "Clientes"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return ClientsModel{
		clientSvc: clientSvc,
		list:      l,
	}
}

func (m ClientsModel) Title() string { return "Clients" }

func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateForm {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | enter: edit | d: delete | /: filter"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsLoadedMsg:
		m.refreshItems(msg.clients)
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Guardado."
		}

		m.state = clientsStateBrowse
		m.form = nil

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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

			if item, ok := m.list.SelectedItem().(clientItem); ok {
				c := item.client
				return m.startForm(&c)
			}
		case "d":
			if filtering {
				break
			}

			if item, ok := m.list.SelectedItem().(clientItem); ok {
				return m, m.deleteCmd(item.client)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ClientsModel) startForm(c *client.Client) (tea.Model, tea.Cmd) {
	m.editing = c

	if c != nil {
		m.formName = c.Name
		m.formDebt = strconv.FormatFloat(float64(c.InitialDebt)/100, 'f', 2, 64)
	} else {
		m.formName = ""
		m.formDebt = ""
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
				Key("initial_debt").
				Title("Deuda inicial").
				Placeholder("0.00").
				Value(&m.formDebt).
				Validate(validateOptionalMoney),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateForm

	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
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

func (m ClientsModel) View() string {
	if m.state == clientsStateForm && m.form != nil {
		title := "Nuevo cliente"
		if m.editing != nil {
			title = "Editar cliente"
		}

		note := ""
		if m.editing != nil {
			note = lipgloss.NewStyle().Faint(true).Render(
				"Cambiar la deuda inicial ajusta la deuda actual por la diferencia.") + "\n\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + note + m.form.View())
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *ClientsModel) refreshItems(clients []client.Client) {
	items := make([]list.Item, len(clients))
	for i, c := range clients {
		items[i] = clientItem{client: c}
	}

	m.list.SetItems(items)
}

// Messages

type clientsLoadedMsg struct {
	clients []client.Client
}

func (m ClientsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return clientsLoadedMsg{clients: m.clientSvc.List()}
	}
}

type clientSavedMsg struct {
	err error
}

func (m ClientsModel) saveCmd() tea.Cmd {
	editing := m.editing
	name := m.formName
	debtStr := m.formDebt
	svc := m.clientSvc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var debt int64

		if strings.TrimSpace(debtStr) != "" {
			var err error

			debt, err = ParseMoney(debtStr)
			if err != nil {
				return clientSavedMsg{err: err}
			}
		}

		if editing == nil {
			_, err := svc.Create(ctx, name, debt)
			return clientSavedMsg{err: err}
		}

		return clientSavedMsg{err: svc.Update(ctx, editing.ID, name, debt)}
	}
}

func (m ClientsModel) deleteCmd(c client.Client) tea.Cmd {
	svc := m.clientSvc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return clientSavedMsg{err: svc.Delete(ctx, c.ID)}
	}
}

// clientItemDelegate renders items in the list.
type clientItemDelegate struct{}

func (d clientItemDelegate) Height() int                             { return 2 }
func (d clientItemDelegate) Spacing() int                            { return 0 }
func (d clientItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d clientItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(clientItem)
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

package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/hvaldez/gestorpro/cmd/tui/internal/view"
	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/config"
	"github.com/hvaldez/gestorpro/internal/database"
	"github.com/hvaldez/gestorpro/internal/sale"
	"github.com/hvaldez/gestorpro/internal/store"
	"github.com/hvaldez/gestorpro/internal/store/postgres"
)

type model struct {
	catalogService *catalog.Service
	clientService  *client.Service
	engine         *sale.Engine
	store          *store.Store

	currentView View

	dashboardView view.DashboardModel
	productsView  view.ProductsModel
	clientsView   view.ClientsModel
	salesView     view.SalesModel
	paymentsView  view.PaymentsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewProducts  View = 2
	ViewClients   View = 3
	ViewSales     View = 4
	ViewPayments  View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	persister := postgres.New(db)
	if err := persister.EnsureSchema(ctx); err != nil {
		slog.Error("failed to prepare schema", "error", err)
		os.Exit(1)
	}

	st := store.New(persister)
	if err := st.Load(ctx); err != nil {
		slog.Error("failed to load collections", "error", err)
		os.Exit(1)
	}

	catalogSvc := catalog.NewService(st)
	clientSvc := client.NewService(st)
	engine := sale.NewEngine(st)

	return model{
		catalogService: catalogSvc,
		clientService:  clientSvc,
		engine:         engine,
		store:          st,
		currentView:    ViewMenu,
		dashboardView:  view.NewDashboardModel(st),
		productsView:   view.NewProductsModel(catalogSvc),
		clientsView:    view.NewClientsModel(clientSvc),
		salesView:      view.NewSalesModel(catalogSvc, clientSvc, engine, st),
		paymentsView:   view.NewPaymentsModel(clientSvc, engine, st),
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
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.store)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.catalogService)

				return m, m.productsView.Init()
			case "3":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.clientService)

				return m, m.clientsView.Init()
			case "4":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.catalogService, m.clientService, m.engine, m.store)

				return m, m.salesView.Init()
			case "5":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.clientService, m.engine, m.store)

				return m, m.paymentsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"GestorPro\n\n" +
				"1. Resumen\n" +
				"2. Productos\n" +
				"3. Clientes\n" +
				"4. Ventas\n" +
				"5. Abonos\n\n" +
				"q. Salir",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewSales:
		return m.salesView.View()
	case ViewPayments:
		return m.paymentsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

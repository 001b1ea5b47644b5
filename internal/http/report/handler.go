package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/report"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// Store is the read-only view of the collections the dashboard needs.
type Store interface {
	Products() []catalog.Product
	Clients() []client.Client
	Sales() []sale.Sale
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/months", h.months)
}

type summaryResponse struct {
	Income          int64 `json:"income"`
	Operations      int   `json:"operations"`
	CreditSales     int   `json:"credit_sales"`
	OutstandingDebt int64 `json:"outstanding_debt"`
	StockValue      int64 `json:"stock_value"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sales := h.store.Sales()

	if month := r.URL.Query().Get("month"); month != "" {
		sales = report.SalesByMonth(sales, month)
	}

	var start, end time.Time

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			start = t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			end = t
		}
	}

	if !start.IsZero() || !end.IsZero() {
		sales = report.SalesBetween(sales, start, end)
	}

	sum := report.Summarize(sales, h.store.Clients(), h.store.Products())

	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(summaryResponse{
		Income:          sum.Income,
		Operations:      sum.Operations,
		CreditSales:     sum.CreditSales,
		OutstandingDebt: sum.OutstandingDebt,
		StockValue:      sum.StockValue,
	})
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) months(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(report.Months(h.store.Sales())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

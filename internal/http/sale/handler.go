package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/report"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// Log is the read side of the sale collection.
type Log interface {
	Sales() []sale.Sale
}

type Handler struct {
	engine *sale.Engine
	log    Log
}

func NewHandler(engine *sale.Engine, log Log) *Handler {
	return &Handler{engine: engine, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.commit)
	r.Get("/", h.list)
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type commitSaleRequest struct {
	Items    []cartItemRequest `json:"items"`
	Type     sale.Type         `json:"type"`
	ClientID *uuid.UUID        `json:"client_id,omitempty"`
	CashPaid int64             `json:"cash_paid,omitempty"`
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req commitSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]sale.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, sale.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	s, err := h.engine.CommitSale(r.Context(), sale.SaleParams{
		Items:    items,
		Type:     req.Type,
		ClientID: req.ClientID,
		CashPaid: req.CashPaid,
	})
	if err != nil {
		http.Error(w, err.Error(), commitStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(s)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// commitStatus maps engine validation failures onto HTTP statuses: missing
// references are 404, state conflicts are 409, everything else about the
// input is 400.
func commitStatus(err error) int {
	switch {
	case errors.Is(err, sale.ErrProductNotFound), errors.Is(err, sale.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, sale.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, sale.ErrEmptyCart),
		errors.Is(err, sale.ErrInvalidQuantity),
		errors.Is(err, sale.ErrClientRequired),
		errors.Is(err, sale.ErrInvalidAmount),
		errors.Is(err, sale.ErrDownPaymentExceedsTotal):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sales := h.log.Sales()

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

	if term := r.URL.Query().Get("client"); term != "" {
		sales = report.SalesByClient(sales, term)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(sales)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

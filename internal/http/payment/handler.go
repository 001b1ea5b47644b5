package payment

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

// Log is the read side of the payment collection.
type Log interface {
	Payments() []sale.Payment
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

type commitPaymentRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	Amount   int64     `json:"amount"`
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req commitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.engine.CommitPayment(r.Context(), req.ClientID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, sale.ErrClientNotFound):
			http.Error(w, "client not found", http.StatusNotFound)
		case errors.Is(err, sale.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, sale.ErrAmountExceedsDebt):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	payments := report.PaymentsByClient(h.log.Payments(), r.URL.Query().Get("client"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(payments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type paymentResponse struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	Amount     int64     `json:"amount"`
	Date       time.Time `json:"date"`
}

func toResponse(p sale.Payment) paymentResponse {
	return paymentResponse{
		ID:         p.ID,
		ClientID:   p.ClientID,
		ClientName: p.ClientName,
		Amount:     p.Amount,
		Date:       p.Date,
	}
}

func toResponseList(payments []sale.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	return resp
}

package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/sale"
)

type itemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	Subtotal    int64     `json:"subtotal"`
}

type saleResponse struct {
	ID         uuid.UUID      `json:"id"`
	Items      []itemResponse `json:"items"`
	ClientID   *uuid.UUID     `json:"client_id,omitempty"`
	ClientName string         `json:"client_name"`
	TotalPrice int64          `json:"total_price"`
	Type       sale.Type      `json:"type"`
	CashPaid   int64          `json:"cash_paid,omitempty"`
	Date       time.Time      `json:"date"`
}

func toResponse(s sale.Sale) saleResponse {
	items := make([]itemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = itemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}

	return saleResponse{
		ID:         s.ID,
		Items:      items,
		ClientID:   s.ClientID,
		ClientName: s.ClientName,
		TotalPrice: s.TotalPrice,
		Type:       s.Type,
		CashPaid:   s.CashPaid,
		Date:       s.Date,
	}
}

func toResponseList(sales []sale.Sale) []saleResponse {
	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toResponse(s)
	}

	return resp
}

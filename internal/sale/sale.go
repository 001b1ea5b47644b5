package sale

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes cash sales from credit sales.
type Type string

const (
	TypeNormal Type = "NORMAL"
	TypeCredit Type = "CREDIT"
)

// DefaultClientName is recorded on sales that have no associated client.
const DefaultClientName = "Cliente General"

// Item is one cart row of a sale. ProductName and UnitPrice are snapshots
// taken at commit time; later catalog edits never change them.
type Item struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	Subtotal    int64     `json:"subtotal"`
}

// Sale is an immutable, append-only record of a committed sale. ClientID is
// a weak reference: the referenced client may have been deleted since, in
// which case ClientName remains the display value.
//
// CashPaid is the down payment collected at sale time on a credit sale. It
// reduces the amount accrued to the client's debt but never appears in the
// payment log.
type Sale struct {
	ID         uuid.UUID  `json:"id"`
	Items      []Item     `json:"items"`
	ClientID   *uuid.UUID `json:"clientId,omitempty"`
	ClientName string     `json:"clientName"`
	TotalPrice int64      `json:"totalPrice"`
	Type       Type       `json:"type"`
	CashPaid   int64      `json:"cashPaid,omitempty"`
	Date       time.Time  `json:"date"`
}

// Payment is an immutable, append-only record of a debt reduction.
type Payment struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"clientId"`
	ClientName string    `json:"clientName"`
	Amount     int64     `json:"amount"`
	Date       time.Time `json:"date"`
}

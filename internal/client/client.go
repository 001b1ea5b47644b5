package client

import (
	"github.com/google/uuid"
)

// Client is a roster entry with a running debt balance, in cents.
//
// Debt is not derived from the sale and payment logs: it is mutated
// incrementally by credit sales, payments and initial-debt edits. InitialDebt
// records the balance the client was created with so later edits can shift
// Debt by the exact difference.
type Client struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	InitialDebt int64     `json:"initialDebt,omitempty"`
	Debt        int64     `json:"debt"`
}

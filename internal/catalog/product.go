package catalog

import (
	"github.com/google/uuid"
)

// Product is a catalog entry. Price is stored in cents.
//
// The JSON field names match the persisted collection format, which predates
// this server (data migrated from the original web app keeps working).
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Description string    `json:"description,omitempty"`
}

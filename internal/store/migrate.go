package store

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/sale"
)

// storedSale is the on-disk sale shape. Early versions of the app stored a
// single product per sale in flat fields instead of an items array; those
// fields survive here so old records can be upgraded on load.
type storedSale struct {
	sale.Sale

	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ProductName string     `json:"productName,omitempty"`
	Quantity    int        `json:"quantity,omitempty"`
}

// decodeSales decodes the sales collection and migrates legacy single-product
// records into the items shape. The migration is read-time only and
// deterministic: the same stored record always yields the same items array.
// The unit price is reconstructed as totalPrice/quantity, which truncates
// sub-cent remainders the same way on every load.
func decodeSales(data json.RawMessage) ([]sale.Sale, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var stored []storedSale
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	sales := make([]sale.Sale, 0, len(stored))

	for _, raw := range stored {
		if len(raw.Items) == 0 && raw.ProductID != nil {
			qty := raw.Quantity
			if qty < 1 {
				qty = 1
			}

			raw.Items = []sale.Item{{
				ProductID:   *raw.ProductID,
				ProductName: raw.ProductName,
				Quantity:    qty,
				UnitPrice:   raw.TotalPrice / int64(qty),
				Subtotal:    raw.TotalPrice,
			}}
		}

		sales = append(sales, raw.Sale)
	}

	return sales, nil
}

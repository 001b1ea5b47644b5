package sale

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation failures raised by the engine. All of them leave every
// collection untouched.
var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrProductNotFound         = errors.New("product not found")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrClientRequired          = errors.New("client required for credit sale")
	ErrClientNotFound          = errors.New("client not found")
	ErrDownPaymentExceedsTotal = errors.New("down payment exceeds sale total")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrAmountExceedsDebt       = errors.New("amount exceeds client debt")
)

// ProductNotFoundError reports which cart row referenced a missing product.
type ProductNotFoundError struct {
	ID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}

// InsufficientStockError reports a stock shortage for one product, with the
// quantity combined across duplicate cart rows.
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

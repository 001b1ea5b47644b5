package sale

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
)

// Store exposes the collections the engine reads and the atomic commit
// operations it needs. A commit replaces the passed collections and prepends
// the new record in one store operation, so a sale never lands without its
// stock decrement.
type Store interface {
	Products() []catalog.Product
	Clients() []client.Client
	CommitSale(ctx context.Context, products []catalog.Product, clients []client.Client, s Sale) error
	CommitPayment(ctx context.Context, clients []client.Client, p Payment) error
}

// Engine validates and commits sales and payments. Validation runs against a
// snapshot of the current state and performs no mutation; only after every
// check passes are the new collection values computed and committed.
type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// CartItem is one raw cart row. The same product may appear on several rows;
// stock validation combines them.
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type SaleParams struct {
	Items    []CartItem
	Type     Type
	ClientID *uuid.UUID
	// CashPaid is the down payment on a credit sale. Ignored for normal sales.
	CashPaid int64
}

func (e *Engine) CommitSale(ctx context.Context, params SaleParams) (Sale, error) {
	if len(params.Items) == 0 {
		return Sale{}, ErrEmptyCart
	}

	// Combine quantities per product so a cart that splits the same product
	// across rows cannot slip past the stock check.
	combined := make(map[uuid.UUID]int)

	for _, item := range params.Items {
		if item.Quantity < 1 {
			return Sale{}, ErrInvalidQuantity
		}

		combined[item.ProductID] += item.Quantity
	}

	products := e.store.Products()

	index := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	for productID, qty := range combined {
		i, ok := index[productID]
		if !ok {
			return Sale{}, &ProductNotFoundError{ID: productID}
		}

		if products[i].Stock < qty {
			return Sale{}, &InsufficientStockError{
				Name:      products[i].Name,
				Requested: qty,
				Available: products[i].Stock,
			}
		}
	}

	// Each original row becomes its own item, preserving cart order, with
	// the unit price snapshotted from the catalog.
	items := make([]Item, 0, len(params.Items))

	var total int64

	for _, item := range params.Items {
		p := products[index[item.ProductID]]
		subtotal := p.Price * int64(item.Quantity)
		total += subtotal

		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			Subtotal:    subtotal,
		})
	}

	clients := e.store.Clients()

	var (
		clientName string
		cashPaid   int64
	)

	if params.Type == TypeCredit {
		if params.ClientID == nil {
			return Sale{}, ErrClientRequired
		}

		if params.CashPaid < 0 {
			return Sale{}, ErrInvalidAmount
		}

		if params.CashPaid > total {
			return Sale{}, ErrDownPaymentExceedsTotal
		}

		cashPaid = params.CashPaid

		found := false

		for i := range clients {
			if clients[i].ID == *params.ClientID {
				clientName = clients[i].Name
				clients[i].Debt += total - cashPaid
				found = true

				break
			}
		}

		if !found {
			return Sale{}, ErrClientNotFound
		}
	} else if params.ClientID != nil {
		// Normal sales may still name a client for display. The reference is
		// weak, so a stale id simply falls back to the default name.
		for _, c := range clients {
			if c.ID == *params.ClientID {
				clientName = c.Name
				break
			}
		}
	}

	if clientName == "" {
		clientName = DefaultClientName
	}

	for productID, qty := range combined {
		products[index[productID]].Stock -= qty
	}

	s := Sale{
		ID:         uuid.New(),
		Items:      items,
		ClientID:   params.ClientID,
		ClientName: clientName,
		TotalPrice: total,
		Type:       params.Type,
		CashPaid:   cashPaid,
		Date:       e.now(),
	}

	if err := e.store.CommitSale(ctx, products, clients, s); err != nil {
		return Sale{}, err
	}

	return s, nil
}

func (e *Engine) CommitPayment(ctx context.Context, clientID uuid.UUID, amount int64) (Payment, error) {
	clients := e.store.Clients()

	found := -1

	for i := range clients {
		if clients[i].ID == clientID {
			found = i
			break
		}
	}

	if found < 0 {
		return Payment{}, ErrClientNotFound
	}

	if amount <= 0 {
		return Payment{}, ErrInvalidAmount
	}

	// Overpaying is rejected outright; there is no credit-balance concept.
	if amount > clients[found].Debt {
		return Payment{}, ErrAmountExceedsDebt
	}

	clients[found].Debt -= amount

	p := Payment{
		ID:         uuid.New(),
		ClientID:   clientID,
		ClientName: clients[found].Name,
		Amount:     amount,
		Date:       e.now(),
	}

	if err := e.store.CommitPayment(ctx, clients, p); err != nil {
		return Payment{}, err
	}

	return p, nil
}

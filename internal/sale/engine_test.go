package sale_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/sale"
	"github.com/hvaldez/gestorpro/internal/store"
)

func newTestStore(t *testing.T, products []catalog.Product, clients []client.Client) *store.Store {
	t.Helper()

	st := store.New(store.NewMemoryPersister())

	ctx := context.Background()
	require.NoError(t, st.ReplaceProducts(ctx, products))
	require.NoError(t, st.ReplaceClients(ctx, clients))

	return st
}

func TestEngine_CommitSale_Normal(t *testing.T) {
	widgetID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
		nil,
	)

	engine := sale.NewEngine(st)

	got, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items: []sale.CartItem{{ProductID: widgetID, Quantity: 2}},
		Type:  sale.TypeNormal,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), got.TotalPrice)
	assert.Equal(t, sale.TypeNormal, got.Type)
	assert.Equal(t, sale.DefaultClientName, got.ClientName)
	assert.Zero(t, got.CashPaid)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "Widget", got.Items[0].ProductName)
	assert.Equal(t, int64(1000), got.Items[0].UnitPrice)
	assert.Equal(t, int64(2000), got.Items[0].Subtotal)

	products := st.Products()
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].Stock)

	sales := st.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, got.ID, sales[0].ID)
}

func TestEngine_CommitSale_PrependsNewestFirst(t *testing.T) {
	widgetID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
		nil,
	)

	engine := sale.NewEngine(st)
	ctx := context.Background()

	first, err := engine.CommitSale(ctx, sale.SaleParams{
		Items: []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
		Type:  sale.TypeNormal,
	})
	require.NoError(t, err)

	second, err := engine.CommitSale(ctx, sale.SaleParams{
		Items: []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
		Type:  sale.TypeNormal,
	})
	require.NoError(t, err)

	sales := st.Sales()
	require.Len(t, sales, 2)
	assert.Equal(t, second.ID, sales[0].ID)
	assert.Equal(t, first.ID, sales[1].ID)
}

func TestEngine_CommitSale_NormalWithClientName(t *testing.T) {
	widgetID := uuid.New()
	clientID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
		[]client.Client{{ID: clientID, Name: "Ana"}},
	)

	engine := sale.NewEngine(st)

	got, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
		Type:     sale.TypeNormal,
		ClientID: &clientID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.ClientName)

	// A normal sale never touches the client's debt.
	clients := st.Clients()
	require.Len(t, clients, 1)
	assert.Zero(t, clients[0].Debt)
}

func TestEngine_CommitSale_NormalWithStaleClientID(t *testing.T) {
	widgetID := uuid.New()
	staleID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
		nil,
	)

	engine := sale.NewEngine(st)

	got, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
		Type:     sale.TypeNormal,
		ClientID: &staleID,
	})
	require.NoError(t, err)
	assert.Equal(t, sale.DefaultClientName, got.ClientName)
}

func TestEngine_CommitSale_Credit(t *testing.T) {
	widgetID := uuid.New()
	clientID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1500, Stock: 10}},
		[]client.Client{{ID: clientID, Name: "Ana", Debt: 10000}},
	)

	engine := sale.NewEngine(st)

	got, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 2}},
		Type:     sale.TypeCredit,
		ClientID: &clientID,
		CashPaid: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), got.TotalPrice)
	assert.Equal(t, int64(1000), got.CashPaid)
	assert.Equal(t, "Ana", got.ClientName)

	clients := st.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, int64(12000), clients[0].Debt)
}

func TestEngine_CommitSale_CreditFullyPaidUpFront(t *testing.T) {
	widgetID := uuid.New()
	clientID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1500, Stock: 10}},
		[]client.Client{{ID: clientID, Name: "Ana"}},
	)

	engine := sale.NewEngine(st)

	_, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
		Type:     sale.TypeCredit,
		ClientID: &clientID,
		CashPaid: 1500,
	})
	require.NoError(t, err)

	clients := st.Clients()
	require.Len(t, clients, 1)
	assert.Zero(t, clients[0].Debt)
}

func TestEngine_CommitSale_CombinesDuplicateCartRows(t *testing.T) {
	widgetID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
		nil,
	)

	engine := sale.NewEngine(st)

	// 3 + 3 exceeds the stock of 5 even though each row alone fits.
	_, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items: []sale.CartItem{
			{ProductID: widgetID, Quantity: 3},
			{ProductID: widgetID, Quantity: 3},
		},
		Type: sale.TypeNormal,
	})
	require.ErrorIs(t, err, sale.ErrInsufficientStock)

	var stockErr *sale.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Widget", stockErr.Name)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	products := st.Products()
	require.Len(t, products, 1)
	assert.Equal(t, 5, products[0].Stock)
	assert.Empty(t, st.Sales())
}

func TestEngine_CommitSale_DuplicateRowsWithinStock(t *testing.T) {
	widgetID := uuid.New()

	st := newTestStore(t,
		[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
		nil,
	)

	engine := sale.NewEngine(st)

	got, err := engine.CommitSale(context.Background(), sale.SaleParams{
		Items: []sale.CartItem{
			{ProductID: widgetID, Quantity: 2},
			{ProductID: widgetID, Quantity: 2},
		},
		Type: sale.TypeNormal,
	})
	require.NoError(t, err)

	// Each original row stays its own line item.
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(4000), got.TotalPrice)

	products := st.Products()
	assert.Equal(t, 1, products[0].Stock)
}

func TestEngine_CommitSale_Errors(t *testing.T) {
	widgetID := uuid.New()
	clientID := uuid.New()
	unknownID := uuid.New()

	type testCase struct {
		name    string
		params  sale.SaleParams
		wantErr error
	}

	tests := []testCase{
		{
			name:    "EmptyCart",
			params:  sale.SaleParams{Type: sale.TypeNormal},
			wantErr: sale.ErrEmptyCart,
		},
		{
			name: "ZeroQuantity",
			params: sale.SaleParams{
				Items: []sale.CartItem{{ProductID: widgetID, Quantity: 0}},
				Type:  sale.TypeNormal,
			},
			wantErr: sale.ErrInvalidQuantity,
		},
		{
			name: "NegativeQuantity",
			params: sale.SaleParams{
				Items: []sale.CartItem{{ProductID: widgetID, Quantity: -1}},
				Type:  sale.TypeNormal,
			},
			wantErr: sale.ErrInvalidQuantity,
		},
		{
			name: "ProductNotFound",
			params: sale.SaleParams{
				Items: []sale.CartItem{{ProductID: unknownID, Quantity: 1}},
				Type:  sale.TypeNormal,
			},
			wantErr: sale.ErrProductNotFound,
		},
		{
			name: "InsufficientStock",
			params: sale.SaleParams{
				Items: []sale.CartItem{{ProductID: widgetID, Quantity: 6}},
				Type:  sale.TypeNormal,
			},
			wantErr: sale.ErrInsufficientStock,
		},
		{
			name: "CreditWithoutClient",
			params: sale.SaleParams{
				Items: []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
				Type:  sale.TypeCredit,
			},
			wantErr: sale.ErrClientRequired,
		},
		{
			name: "CreditUnknownClient",
			params: sale.SaleParams{
				Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
				Type:     sale.TypeCredit,
				ClientID: &unknownID,
			},
			wantErr: sale.ErrClientNotFound,
		},
		{
			name: "NegativeDownPayment",
			params: sale.SaleParams{
				Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
				Type:     sale.TypeCredit,
				ClientID: &clientID,
				CashPaid: -1,
			},
			wantErr: sale.ErrInvalidAmount,
		},
		{
			name: "DownPaymentExceedsTotal",
			params: sale.SaleParams{
				Items:    []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
				Type:     sale.TypeCredit,
				ClientID: &clientID,
				CashPaid: 1001,
			},
			wantErr: sale.ErrDownPaymentExceedsTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t,
				[]catalog.Product{{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5}},
				[]client.Client{{ID: clientID, Name: "Ana"}},
			)

			engine := sale.NewEngine(st)

			_, err := engine.CommitSale(context.Background(), tt.params)
			require.ErrorIs(t, err, tt.wantErr)

			// No validation error leaves a trace.
			assert.Equal(t, 5, st.Products()[0].Stock)
			assert.Zero(t, st.Clients()[0].Debt)
			assert.Empty(t, st.Sales())
		})
	}
}

func TestEngine_CommitSale_FailureDoesNotPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	widgetID := uuid.New()

	persister := store.NewMockPersister(ctrl)
	persister.EXPECT().
		Replace(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2) // seeding products and clients

	st := store.New(persister)

	ctx := context.Background()
	require.NoError(t, st.ReplaceProducts(ctx, []catalog.Product{
		{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5},
	}))
	require.NoError(t, st.ReplaceClients(ctx, nil))

	engine := sale.NewEngine(st)

	_, err := engine.CommitSale(ctx, sale.SaleParams{
		Items: []sale.CartItem{{ProductID: widgetID, Quantity: 6}},
		Type:  sale.TypeNormal,
	})
	require.ErrorIs(t, err, sale.ErrInsufficientStock)
}

func TestEngine_CommitSale_PersistErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	widgetID := uuid.New()

	persister := store.NewMockPersister(ctrl)
	persister.EXPECT().
		Replace(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	persister.EXPECT().
		Replace(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("db down"))

	st := store.New(persister)

	ctx := context.Background()
	require.NoError(t, st.ReplaceProducts(ctx, []catalog.Product{
		{ID: widgetID, Name: "Widget", Price: 1000, Stock: 5},
	}))
	require.NoError(t, st.ReplaceClients(ctx, nil))

	engine := sale.NewEngine(st)

	_, err := engine.CommitSale(ctx, sale.SaleParams{
		Items: []sale.CartItem{{ProductID: widgetID, Quantity: 1}},
		Type:  sale.TypeNormal,
	})
	require.Error(t, err)
}

func TestEngine_CommitPayment(t *testing.T) {
	clientID := uuid.New()

	st := newTestStore(t, nil, []client.Client{{ID: clientID, Name: "Ana", Debt: 13000}})
	engine := sale.NewEngine(st)
	ctx := context.Background()

	got, err := engine.CommitPayment(ctx, clientID, 13000)
	require.NoError(t, err)

	assert.Equal(t, int64(13000), got.Amount)
	assert.Equal(t, "Ana", got.ClientName)
	assert.Equal(t, clientID, got.ClientID)

	clients := st.Clients()
	require.Len(t, clients, 1)
	assert.Zero(t, clients[0].Debt)

	payments := st.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, got.ID, payments[0].ID)

	// The debt is settled now, so another payment overpays.
	_, err = engine.CommitPayment(ctx, clientID, 1)
	require.ErrorIs(t, err, sale.ErrAmountExceedsDebt)
}

func TestEngine_CommitPayment_Errors(t *testing.T) {
	clientID := uuid.New()

	type testCase struct {
		name     string
		clientID uuid.UUID
		amount   int64
		wantErr  error
	}

	tests := []testCase{
		{
			name:     "UnknownClient",
			clientID: uuid.New(),
			amount:   100,
			wantErr:  sale.ErrClientNotFound,
		},
		{
			name:     "ZeroAmount",
			clientID: clientID,
			amount:   0,
			wantErr:  sale.ErrInvalidAmount,
		},
		{
			name:     "NegativeAmount",
			clientID: clientID,
			amount:   -50,
			wantErr:  sale.ErrInvalidAmount,
		},
		{
			name:     "ExceedsDebt",
			clientID: clientID,
			amount:   5001,
			wantErr:  sale.ErrAmountExceedsDebt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t, nil, []client.Client{{ID: clientID, Name: "Ana", Debt: 5000}})
			engine := sale.NewEngine(st)

			_, err := engine.CommitPayment(context.Background(), tt.clientID, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, int64(5000), st.Clients()[0].Debt)
			assert.Empty(t, st.Payments())
		})
	}
}

package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/store"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()

	return catalog.NewService(store.New(store.NewMemoryPersister()))
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name    string
		params  catalog.CreateParams
		wantErr error
	}

	tests := []testCase{
		{
			name: "Success",
			params: catalog.CreateParams{
				Name:        "Widget",
				Price:       1000,
				Stock:       5,
				Description: "A widget",
			},
		},
		{
			name:   "FreeProduct",
			params: catalog.CreateParams{Name: "Sample", Price: 0, Stock: 1},
		},
		{
			name:    "NegativePrice",
			params:  catalog.CreateParams{Name: "Widget", Price: -1},
			wantErr: catalog.ErrNegativePrice,
		},
		{
			name:    "NegativeStock",
			params:  catalog.CreateParams{Name: "Widget", Price: 100, Stock: -1},
			wantErr: catalog.ErrNegativeStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, svc.List())

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
			assert.Equal(t, tt.params.Price, got.Price)
			assert.Equal(t, tt.params.Stock, got.Stock)

			require.Len(t, svc.List(), 1)
		})
	}
}

func TestService_Update(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateParams{
		Name:        "Widget",
		Price:       1000,
		Stock:       5,
		Description: "Original",
	})
	require.NoError(t, err)

	newPrice := int64(1200)
	require.NoError(t, svc.Update(ctx, created.ID, catalog.UpdateParams{Price: &newPrice}))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)

	// Only the supplied field changed.
	assert.Equal(t, int64(1200), got.Price)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, "Original", got.Description)
}

func TestService_Update_Errors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateParams{Name: "Widget", Price: 1000, Stock: 5})
	require.NoError(t, err)

	negPrice := int64(-1)
	require.ErrorIs(t, svc.Update(ctx, created.ID, catalog.UpdateParams{Price: &negPrice}), catalog.ErrNegativePrice)

	negStock := -1
	require.ErrorIs(t, svc.Update(ctx, created.ID, catalog.UpdateParams{Stock: &negStock}), catalog.ErrNegativeStock)

	name := "Gadget"
	require.ErrorIs(t, svc.Update(ctx, uuid.New(), catalog.UpdateParams{Name: &name}), catalog.ErrNotFound)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Price)
}

func TestService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateParams{Name: "Widget", Price: 1000, Stock: 5})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, svc.List())

	// Deleting an absent id is a no-op.
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestService_Search(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Coca-Cola 600ml", "Pepsi 600ml", "Agua Mineral"} {
		_, err := svc.Create(ctx, catalog.CreateParams{Name: name, Price: 100, Stock: 10})
		require.NoError(t, err)
	}

	assert.Len(t, svc.Search("600ML"), 2)
	assert.Len(t, svc.Search("agua"), 1)
	assert.Empty(t, svc.Search("cerveza"))
	assert.Len(t, svc.Search(""), 3)
}

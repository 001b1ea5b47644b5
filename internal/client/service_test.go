package client_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/store"
)

func newService(t *testing.T) (*client.Service, *store.Store) {
	t.Helper()

	st := store.New(store.NewMemoryPersister())

	return client.NewService(st), st
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name        string
		clientName  string
		initialDebt int64
		wantErr     error
	}

	tests := []testCase{
		{
			name:        "Success",
			clientName:  "Ana",
			initialDebt: 5000,
		},
		{
			name:       "NoInitialDebt",
			clientName: "Luis",
		},
		{
			name:    "EmptyName",
			wantErr: client.ErrEmptyName,
		},
		{
			name:       "BlankName",
			clientName: "   ",
			wantErr:    client.ErrEmptyName,
		},
		{
			name:        "NegativeInitialDebt",
			clientName:  "Ana",
			initialDebt: -1,
			wantErr:     client.ErrNegativeDebt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)

			got, err := svc.Create(context.Background(), tt.clientName, tt.initialDebt)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, svc.List())

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.clientName, got.Name)
			assert.Equal(t, tt.initialDebt, got.InitialDebt)

			// The opening balance is the initial debt.
			assert.Equal(t, tt.initialDebt, got.Debt)
		})
	}
}

func TestService_Update_ShiftsDebtByDelta(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", 5000)
	require.NoError(t, err)

	// Simulate accrual since creation: a credit sale raised the debt.
	clients := st.Clients()
	clients[0].Debt = 8000
	require.NoError(t, st.ReplaceClients(ctx, clients))

	// Raising the initial debt by 2000 raises the balance by the same amount.
	require.NoError(t, svc.Update(ctx, created.ID, "Ana María", 7000))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, int64(7000), got.InitialDebt)
	assert.Equal(t, int64(10000), got.Debt)
}

func TestService_Update_DebtMayGoNegative(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", 5000)
	require.NoError(t, err)

	// Payments brought the balance below the recorded initial debt.
	clients := st.Clients()
	clients[0].Debt = 1000
	require.NoError(t, st.ReplaceClients(ctx, clients))

	// Zeroing the initial debt shifts the balance by -5000, past zero.
	require.NoError(t, svc.Update(ctx, created.ID, "Ana", 0))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-4000), got.Debt)
}

func TestService_Update_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", 0)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Update(ctx, created.ID, "", 0), client.ErrEmptyName)
	require.ErrorIs(t, svc.Update(ctx, created.ID, "Ana", -1), client.ErrNegativeDebt)
	require.ErrorIs(t, svc.Update(ctx, uuid.New(), "Ana", 0), client.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", 1000)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, svc.List())

	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestService_Debtors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ana", 5000)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Luis", 0)
	require.NoError(t, err)

	debtors := svc.Debtors()
	require.Len(t, debtors, 1)
	assert.Equal(t, "Ana", debtors[0].Name)
}

func TestService_Search(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Ana García", "Luis García", "María López"} {
		_, err := svc.Create(ctx, name, 0)
		require.NoError(t, err)
	}

	assert.Len(t, svc.Search("garcía"), 2)
	assert.Len(t, svc.Search("LÓPEZ"), 1)
	assert.Len(t, svc.Search(""), 3)
}

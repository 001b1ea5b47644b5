package client

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("client not found")
	ErrEmptyName    = errors.New("client name cannot be empty")
	ErrNegativeDebt = errors.New("initial debt cannot be negative")
)

// Store holds the client collection. Mutations replace the whole collection,
// which both updates in-memory state and persists it.
type Store interface {
	Clients() []Client
	ReplaceClients(ctx context.Context, clients []Client) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, name string, initialDebt int64) (Client, error) {
	if strings.TrimSpace(name) == "" {
		return Client{}, ErrEmptyName
	}

	if initialDebt < 0 {
		return Client{}, ErrNegativeDebt
	}

	c := Client{
		ID:          uuid.New(),
		Name:        name,
		InitialDebt: initialDebt,
		Debt:        initialDebt,
	}

	clients := append(s.store.Clients(), c)
	if err := s.store.ReplaceClients(ctx, clients); err != nil {
		return Client{}, err
	}

	return c, nil
}

// Update renames the client and re-records its initial debt. The current
// debt shifts by exactly (initialDebt - oldInitialDebt), so accruals and
// payments made since creation are preserved. A reduction larger than the
// current balance leaves the debt negative; that is deliberate, clamping
// would lose the accrued component.
func (s *Service) Update(ctx context.Context, id uuid.UUID, name string, initialDebt int64) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	if initialDebt < 0 {
		return ErrNegativeDebt
	}

	clients := s.store.Clients()

	found := false

	for i := range clients {
		if clients[i].ID != id {
			continue
		}

		delta := initialDebt - clients[i].InitialDebt

		clients[i].Name = name
		clients[i].InitialDebt = initialDebt
		clients[i].Debt += delta

		found = true

		break
	}

	if !found {
		return ErrNotFound
	}

	return s.store.ReplaceClients(ctx, clients)
}

// Delete removes the client unconditionally. Sales and payments referencing
// the client are historical records and are left untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	clients := s.store.Clients()

	kept := clients[:0]
	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(clients) {
		return nil
	}

	return s.store.ReplaceClients(ctx, kept)
}

func (s *Service) Get(id uuid.UUID) (Client, error) {
	for _, c := range s.store.Clients() {
		if c.ID == id {
			return c, nil
		}
	}

	return Client{}, ErrNotFound
}

func (s *Service) List() []Client {
	return s.store.Clients()
}

// Search returns clients whose name contains the term, case-insensitively.
func (s *Service) Search(term string) []Client {
	clients := s.store.Clients()
	if term == "" {
		return clients
	}

	term = strings.ToLower(term)

	var matched []Client

	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), term) {
			matched = append(matched, c)
		}
	}

	return matched
}

// Debtors returns the clients with an outstanding balance.
func (s *Service) Debtors() []Client {
	var debtors []Client

	for _, c := range s.store.Clients() {
		if c.Debt > 0 {
			debtors = append(debtors, c)
		}
	}

	return debtors
}

// Package store owns the four in-memory collections and their persistence.
// All state lives here; services and the sale engine read snapshots and
// commit whole collections back. Every mutation replaces a collection's
// stored value in full; there are no delta writes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// Collection names used as keys in the durable store.
const (
	CollectionProducts = "products"
	CollectionClients  = "clients"
	CollectionSales    = "sales"
	CollectionPayments = "payments"
)

// Snapshot holds the raw stored value of each collection. A nil entry means
// the key was never written.
type Snapshot struct {
	Products json.RawMessage
	Clients  json.RawMessage
	Sales    json.RawMessage
	Payments json.RawMessage
}

//go:generate mockgen -source=store.go -destination=persister_mock.go -package=store

// Persister is the durable key-value substrate. LoadAll runs once at
// startup; Replace overwrites a collection's entire prior value.
type Persister interface {
	LoadAll(ctx context.Context) (Snapshot, error)
	Replace(ctx context.Context, collection string, data json.RawMessage) error
}

type Store struct {
	mu        sync.RWMutex
	persister Persister

	products []catalog.Product
	clients  []client.Client
	sales    []sale.Sale
	payments []sale.Payment
}

func New(persister Persister) *Store {
	return &Store{persister: persister}
}

// Load populates the in-memory collections from the durable store. A missing
// key yields an empty collection. A collection that fails to decode is
// logged and started empty rather than taking the process down; sales go
// through the legacy single-product migration before anything else sees
// them.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.persister.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading collections: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = decodeCollection[catalog.Product](CollectionProducts, snap.Products)
	s.clients = decodeCollection[client.Client](CollectionClients, snap.Clients)
	s.payments = decodeCollection[sale.Payment](CollectionPayments, snap.Payments)

	sales, err := decodeSales(snap.Sales)
	if err != nil {
		slog.Error("discarding malformed stored collection", "collection", CollectionSales, "error", err)

		sales = nil
	}

	s.sales = sales

	return nil
}

func decodeCollection[T any](name string, data json.RawMessage) []T {
	if len(data) == 0 {
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Error("discarding malformed stored collection", "collection", name, "error", err)
		return nil
	}

	return items
}

// Snapshot getters return copies so callers can mutate freely before
// committing.

func (s *Store) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]catalog.Product(nil), s.products...)
}

func (s *Store) Clients() []client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]client.Client(nil), s.clients...)
}

func (s *Store) Sales() []sale.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]sale.Sale(nil), s.sales...)
}

func (s *Store) Payments() []sale.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]sale.Payment(nil), s.payments...)
}

func (s *Store) ReplaceProducts(ctx context.Context, products []catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products

	return s.persist(ctx, CollectionProducts, products)
}

func (s *Store) ReplaceClients(ctx context.Context, clients []client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = clients

	return s.persist(ctx, CollectionClients, clients)
}

// CommitSale applies the full effect of one sale: the updated product set,
// the updated client set and the new sale record, prepended so the log stays
// newest-first.
func (s *Store) CommitSale(ctx context.Context, products []catalog.Product, clients []client.Client, sl sale.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.clients = clients
	s.sales = append([]sale.Sale{sl}, s.sales...)

	if err := s.persist(ctx, CollectionProducts, s.products); err != nil {
		return err
	}

	if err := s.persist(ctx, CollectionClients, s.clients); err != nil {
		return err
	}

	return s.persist(ctx, CollectionSales, s.sales)
}

// CommitPayment applies the full effect of one payment: the updated client
// set and the new payment record, newest-first.
func (s *Store) CommitPayment(ctx context.Context, clients []client.Client, p sale.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = clients
	s.payments = append([]sale.Payment{p}, s.payments...)

	if err := s.persist(ctx, CollectionClients, s.clients); err != nil {
		return err
	}

	return s.persist(ctx, CollectionPayments, s.payments)
}

func (s *Store) persist(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}

	if err := s.persister.Replace(ctx, collection, data); err != nil {
		return fmt.Errorf("persisting %s: %w", collection, err)
	}

	return nil
}

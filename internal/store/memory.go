package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryPersister keeps collection blobs in a map. It backs tests and any
// setup that does not need durability.
type MemoryPersister struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string]json.RawMessage)}
}

func (m *MemoryPersister) LoadAll(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Products: m.data[CollectionProducts],
		Clients:  m.data[CollectionClients],
		Sales:    m.data[CollectionSales],
		Payments: m.data[CollectionPayments],
	}, nil
}

func (m *MemoryPersister) Replace(_ context.Context, collection string, data json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[collection] = append(json.RawMessage(nil), data...)

	return nil
}

// Seed writes a raw value directly, bypassing encoding. Tests use it to
// stage legacy or malformed payloads.
func (m *MemoryPersister) Seed(collection string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[collection] = append(json.RawMessage(nil), data...)
}

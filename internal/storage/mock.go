package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStorage is an in-memory Storage for testing.
type MockStorage struct {
	mu      sync.Mutex
	records []Record

	SaveRecordError error
	ListError       error
}

// NewMockStorage creates an empty in-memory store.
func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

// SaveRecord stores the record in memory with the same hash
// deduplication as the real store.
func (m *MockStorage) SaveRecord(_ context.Context, record *Record) (string, bool, error) {
	if m.SaveRecordError != nil {
		return "", false, m.SaveRecordError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	hash := record.MessageHash
	if hash == "" {
		hash = HashMessage(record.Fact.RawMessage)
	}
	for _, existing := range m.records {
		if existing.MessageHash == hash {
			return existing.ID, false, nil
		}
	}

	stored := *record
	stored.MessageHash = hash
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	m.records = append(m.records, stored)
	return stored.ID, true, nil
}

// ListRecords returns stored records newest first.
func (m *MockStorage) ListRecords(_ context.Context, limit int) ([]Record, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]Record, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

// GetRecord returns the record with the given id, or nil.
func (m *MockStorage) GetRecord(_ context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			record := m.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

// Close is a no-op.
func (m *MockStorage) Close() error { return nil }

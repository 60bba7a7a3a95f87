// internal/services/otp/memory.go
package otp

import (
	"context"
	"sync"
	"time"

	"internship-recommender/internal/models"
)

// MemoryStore keeps records for the life of the process only. It is not
// shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]models.OTPRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.OTPRecord)}
}

func (m *MemoryStore) Put(_ context.Context, email string, record models.OTPRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[email] = record
	return nil
}

func (m *MemoryStore) Verify(_ context.Context, email, code string, now time.Time, maxAttempts int) (VerifyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[email]
	if !ok {
		return VerifyResult{Outcome: OutcomeNotFound}, nil
	}

	result, updated, remove := evaluate(record, code, now, maxAttempts)
	if remove {
		delete(m.records, email)
	} else {
		m.records[email] = updated
	}
	return result, nil
}

func (m *MemoryStore) Purge(_ context.Context, now time.Time, retention time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for email, record := range m.records {
		if now.After(record.ExpiresAt.Add(retention)) {
			delete(m.records, email)
			purged++
		}
	}
	return purged, nil
}

// Len is the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

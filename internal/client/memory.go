package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hospitalms/admin-console/internal/resource"
	apperrors "github.com/hospitalms/admin-console/pkg/errors"
)

// Memory is an in-process Resource Client for screens the backend does not
// serve (users, transactions run on sample data). It honours the same
// contract as the REST adapter, including id uniqueness.
type Memory[T resource.Record] struct {
	name     string
	assignID func(*T, string)

	mu      sync.Mutex
	records []T
}

// NewMemory builds an in-memory adapter seeded with the given records.
// assignID stamps a generated id onto drafts created without one; nil
// forbids id-less drafts.
func NewMemory[T resource.Record](name string, seed []T, assignID func(*T, string)) *Memory[T] {
	records := make([]T, len(seed))
	copy(records, seed)
	return &Memory[T]{name: name, assignID: assignID, records: records}
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory[T]) Create(ctx context.Context, draft T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if draft.RecordID() == "" {
		if m.assignID == nil {
			var zero T
			return zero, apperrors.NewValidation("record id is required", nil)
		}
		m.assignID(&draft, uuid.New().String())
	}
	if m.indexOf(draft.RecordID()) >= 0 {
		var zero T
		return zero, apperrors.NewValidation(m.name+" id already exists", nil)
	}

	m.records = append(m.records, draft)
	return draft, nil
}

func (m *Memory[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		var zero T
		return zero, apperrors.NewNotFound(m.name, id)
	}
	m.records[i] = draft
	return draft, nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return apperrors.NewNotFound(m.name, id)
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

func (m *Memory[T]) indexOf(id string) int {
	for i, rec := range m.records {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

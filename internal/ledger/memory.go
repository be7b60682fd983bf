package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process memory. It backs dry runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append validates the whole batch before storing any of it.
func (s *MemoryStore) Append(ctx context.Context, records ...Record) ([]string, error) {
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(records))
	for i, r := range records {
		r.ID = uuid.NewString()
		if r.Installment != nil {
			inst := *r.Installment
			r.Installment = &inst
		}
		ids[i] = r.ID
		s.records = append(s.records, r)
	}
	return ids, nil
}

func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, r := range s.records {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

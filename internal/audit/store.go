// Package audit records ranking and explanation actions in an append-only
// ledger with verifiable result hashes.
package audit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// ErrNotFound is returned when no audit record exists for an ID.
var ErrNotFound = errors.New("audit record not found")

// ErrStoreUnavailable is returned when the backing store cannot be reached.
// The operation is retryable.
var ErrStoreUnavailable = errors.New("audit store unavailable")

// defaultQueryLimit bounds query results when the caller sets no limit.
const defaultQueryLimit = 100

// Store persists audit records. Records are append-only; there is no update
// or delete.
type Store interface {
	Append(ctx context.Context, record *types.AuditRecord) error
	Get(ctx context.Context, auditID string) (*types.AuditRecord, error)
	CountOnDate(ctx context.Context, date time.Time) (int, error)
	Query(ctx context.Context, filters types.AuditFilters) ([]*types.AuditRecord, error)
}

// MemoryStore is an in-memory Store for tests and single-process runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*types.AuditRecord
	byID    map[string]*types.AuditRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*types.AuditRecord)}
}

// Append adds a record to the ledger.
func (s *MemoryStore) Append(_ context.Context, record *types.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records = append(s.records, &copied)
	s.byID[record.AuditID] = &copied
	return nil
}

// Get returns the record with the given ID, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, auditID string) (*types.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byID[auditID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// CountOnDate returns how many records carry a timestamp on the given UTC
// calendar day.
func (s *MemoryStore) CountOnDate(_ context.Context, date time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := date.UTC().Format("2006-01-02")
	count := 0
	for _, record := range s.records {
		if record.Timestamp.UTC().Format("2006-01-02") == day {
			count++
		}
	}
	return count, nil
}

// Query returns matching records newest first, bounded by the limit.
func (s *MemoryStore) Query(_ context.Context, filters types.AuditFilters) ([]*types.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.AuditRecord
	for _, record := range s.records {
		if !matches(record, filters) {
			continue
		}
		copied := *record
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// matches applies the zero-value-means-unfiltered rules.
func matches(record *types.AuditRecord, filters types.AuditFilters) bool {
	if filters.ActorID != "" && record.ActorID != filters.ActorID {
		return false
	}
	if filters.Action != "" && record.Action != filters.Action {
		return false
	}
	if filters.SubjectID != "" {
		found := false
		for _, id := range record.SubjectIDs {
			if id == filters.SubjectID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !filters.Start.IsZero() && record.Timestamp.Before(filters.Start) {
		return false
	}
	if !filters.End.IsZero() && record.Timestamp.After(filters.End) {
		return false
	}
	return true
}

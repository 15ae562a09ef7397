package cache

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// ErrNotFound is returned when no cache entry exists for a pair.
var ErrNotFound = errors.New("cache entry not found")

// ErrStoreUnavailable is returned when the backing store cannot be reached.
// The operation is retryable.
var ErrStoreUnavailable = errors.New("cache store unavailable")

// Store persists cache entries. Put overwrites any existing entry for the
// same (candidate, job) pair.
type Store interface {
	Get(ctx context.Context, candidateID, jobID string) (*types.CacheEntry, error)
	Put(ctx context.Context, entry *types.CacheEntry) error
	DeleteForJob(ctx context.Context, jobID string) (int, error)
	DeleteForCandidate(ctx context.Context, candidateID string) (int, error)
	ListForJob(ctx context.Context, jobID string) ([]*types.CacheEntry, error)
}

type pairKey struct {
	candidateID string
	jobID       string
}

// MemoryStore is an in-memory Store for tests and single-process runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[pairKey]*types.CacheEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[pairKey]*types.CacheEntry)}
}

// Get returns the entry for the pair, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, candidateID, jobID string) (*types.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[pairKey{candidateID, jobID}]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

// Put stores the entry, replacing any previous entry for the same pair.
func (s *MemoryStore) Put(_ context.Context, entry *types.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries[pairKey{entry.CandidateID, entry.JobID}] = &copied
	return nil
}

// DeleteForJob removes every entry for the job and returns the count.
func (s *MemoryStore) DeleteForJob(_ context.Context, jobID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key := range s.entries {
		if key.jobID == jobID {
			delete(s.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteForCandidate removes every entry for the candidate and returns the
// count.
func (s *MemoryStore) DeleteForCandidate(_ context.Context, candidateID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key := range s.entries {
		if key.candidateID == candidateID {
			delete(s.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// ListForJob returns all entries for the job, newest first.
func (s *MemoryStore) ListForJob(_ context.Context, jobID string) ([]*types.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*types.CacheEntry
	for key, entry := range s.entries {
		if key.jobID == jobID {
			copied := *entry
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ComputedAt.After(out[j].ComputedAt)
	})
	return out, nil
}

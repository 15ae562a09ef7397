package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// PostgresStore persists cache entries in PostgreSQL. The score_cache table
// has one row per (candidate_id, job_id) pair with the result as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database and verifies the connection.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get returns the entry for the pair, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, candidateID, jobID string) (*types.CacheEntry, error) {
	var entry types.CacheEntry
	var resultBytes []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, candidate_id, job_id, content_hash, computed_at, result
		 FROM score_cache WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&entry.ID, &entry.CandidateID, &entry.JobID, &entry.ContentHash, &entry.ComputedAt, &resultBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	if len(resultBytes) > 0 {
		var result types.ScoreResult
		if err := json.Unmarshal(resultBytes, &result); err != nil {
			return nil, fmt.Errorf("failed to decode cached result: %w", err)
		}
		entry.Result = &result
	}
	return &entry, nil
}

// Put upserts the entry for its (candidate, job) pair.
func (s *PostgresStore) Put(ctx context.Context, entry *types.CacheEntry) error {
	resultBytes, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal cached result: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO score_cache (id, candidate_id, job_id, content_hash, computed_at, result)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (candidate_id, job_id)
		 DO UPDATE SET id = $1, content_hash = $4, computed_at = $5, result = $6`,
		entry.ID, entry.CandidateID, entry.JobID, entry.ContentHash, entry.ComputedAt, resultBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

// DeleteForJob removes every entry for the job and returns the count.
func (s *PostgresStore) DeleteForJob(ctx context.Context, jobID string) (int, error) {
	result, err := s.pool.Exec(ctx, `DELETE FROM score_cache WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries for job: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// DeleteForCandidate removes every entry for the candidate and returns the
// count.
func (s *PostgresStore) DeleteForCandidate(ctx context.Context, candidateID string) (int, error) {
	result, err := s.pool.Exec(ctx, `DELETE FROM score_cache WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries for candidate: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// ListForJob returns all entries for the job, newest first.
func (s *PostgresStore) ListForJob(ctx context.Context, jobID string) ([]*types.CacheEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, candidate_id, job_id, content_hash, computed_at, result
		 FROM score_cache WHERE job_id = $1 ORDER BY computed_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []*types.CacheEntry
	for rows.Next() {
		var entry types.CacheEntry
		var resultBytes []byte
		if err := rows.Scan(&entry.ID, &entry.CandidateID, &entry.JobID,
			&entry.ContentHash, &entry.ComputedAt, &resultBytes); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		if len(resultBytes) > 0 {
			var result types.ScoreResult
			if err := json.Unmarshal(resultBytes, &result); err != nil {
				return nil, fmt.Errorf("failed to decode cached result: %w", err)
			}
			entry.Result = &result
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// PostgresStore persists audit records in PostgreSQL. Rows are insert-only;
// no code path updates or deletes them.
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

// Append inserts the record.
func (s *PostgresStore) Append(ctx context.Context, record *types.AuditRecord) error {
	subjects, err := json.Marshal(record.SubjectIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal subject IDs: %w", err)
	}
	filters, err := json.Marshal(record.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_records
		   (audit_id, actor_id, action, subject_ids, filters, blind_mode, result_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.AuditID, record.ActorID, record.Action, subjects, filters,
		record.BlindMode, record.ResultHash, record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// Get returns the record with the given ID, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, auditID string) (*types.AuditRecord, error) {
	var record types.AuditRecord
	var subjects, filters []byte
	err := s.pool.QueryRow(ctx,
		`SELECT audit_id, actor_id, action, subject_ids, filters, blind_mode, result_hash, created_at
		 FROM audit_records WHERE audit_id = $1`,
		auditID,
	).Scan(&record.AuditID, &record.ActorID, &record.Action, &subjects, &filters,
		&record.BlindMode, &record.ResultHash, &record.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get audit record: %w", err)
	}
	if err := decodeRecordJSON(&record, subjects, filters); err != nil {
		return nil, err
	}
	return &record, nil
}

// CountOnDate returns how many records carry a timestamp on the given UTC
// calendar day.
func (s *PostgresStore) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_records
		 WHERE created_at >= $1 AND created_at < $2`,
		day, day.Add(24*time.Hour),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit records: %w", err)
	}
	return count, nil
}

// Query returns matching records newest first, bounded by the limit.
func (s *PostgresStore) Query(ctx context.Context, f types.AuditFilters) ([]*types.AuditRecord, error) {
	query := `SELECT audit_id, actor_id, action, subject_ids, filters, blind_mode, result_hash, created_at
		FROM audit_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if f.ActorID != "" {
		query += fmt.Sprintf(" AND actor_id = $%d", argNum)
		args = append(args, f.ActorID)
		argNum++
	}
	if f.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argNum)
		args = append(args, f.Action)
		argNum++
	}
	if f.SubjectID != "" {
		query += fmt.Sprintf(" AND subject_ids ? $%d", argNum)
		args = append(args, f.SubjectID)
		argNum++
	}
	if !f.Start.IsZero() {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, f.Start)
		argNum++
	}
	if !f.End.IsZero() {
		query += fmt.Sprintf(" AND created_at <= $%d", argNum)
		args = append(args, f.End)
		argNum++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []*types.AuditRecord
	for rows.Next() {
		var record types.AuditRecord
		var subjects, filters []byte
		if err := rows.Scan(&record.AuditID, &record.ActorID, &record.Action, &subjects, &filters,
			&record.BlindMode, &record.ResultHash, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if err := decodeRecordJSON(&record, subjects, filters); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}

func decodeRecordJSON(record *types.AuditRecord, subjects, filters []byte) error {
	if len(subjects) > 0 {
		if err := json.Unmarshal(subjects, &record.SubjectIDs); err != nil {
			return fmt.Errorf("failed to decode subject IDs: %w", err)
		}
	}
	if len(filters) > 0 {
		if err := json.Unmarshal(filters, &record.Filters); err != nil {
			return fmt.Errorf("failed to decode filters: %w", err)
		}
	}
	return nil
}

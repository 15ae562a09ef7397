package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// Ledger appends audit records and verifies their result hashes. Appends are
// serialized so the day-count read and the append mint unique sequence IDs
// under concurrent use.
type Ledger struct {
	store Store
	log   *zap.Logger
	now   func() time.Time

	appendMu sync.Mutex
}

// NewLedger creates a ledger over the given store.
func NewLedger(store Store, log *zap.Logger) *Ledger {
	return &Ledger{store: store, log: log, now: time.Now}
}

// Record appends an audit record for the action. The audit ID, result hash,
// and timestamp are assigned here; callers supply only the action's facts.
func (l *Ledger) Record(ctx context.Context, actorID, action string, subjectIDs []string, filters map[string]string, blindMode bool) (*types.AuditRecord, error) {
	if actorID == "" {
		return nil, fmt.Errorf("actor ID is required")
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}

	l.appendMu.Lock()
	defer l.appendMu.Unlock()

	timestamp := l.now().UTC()
	record := &types.AuditRecord{
		AuditID:    l.newAuditID(ctx, timestamp),
		ActorID:    actorID,
		Action:     action,
		SubjectIDs: subjectIDs,
		Filters:    filters,
		BlindMode:  blindMode,
		Timestamp:  timestamp,
	}
	record.ResultHash = ResultHash(record)

	if err := l.store.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append audit record: %w", err)
	}

	l.log.Info("audit record appended",
		zap.String("audit_id", record.AuditID),
		zap.String("actor_id", actorID),
		zap.String("action", action),
		zap.Int("subjects", len(subjectIDs)),
		zap.Bool("blind_mode", blindMode))
	return record, nil
}

// newAuditID builds a human-scannable ID of the form AUD-2026-08-27-0001,
// numbered within the UTC calendar day. When the day count cannot be read,
// a millisecond timestamp suffix keeps the ID unique.
func (l *Ledger) newAuditID(ctx context.Context, timestamp time.Time) string {
	count, err := l.store.CountOnDate(ctx, timestamp)
	if err != nil {
		l.log.Warn("failed to count audit records for day, using timestamp suffix",
			zap.Error(err))
		return fmt.Sprintf("AUD-%s-%d", timestamp.Format("2006-01-02"), timestamp.UnixMilli())
	}
	return fmt.Sprintf("AUD-%s-%04d", timestamp.Format("2006-01-02"), count+1)
}

// hashPayload is the canonical form the result hash covers. Field order is
// fixed by the struct declaration; map keys marshal sorted.
type hashPayload struct {
	Action     string            `json:"action"`
	BlindMode  bool              `json:"blind_mode"`
	Filters    map[string]string `json:"filters"`
	SubjectIDs []string          `json:"subject_ids"`
	Timestamp  string            `json:"timestamp"`
}

// ResultHash computes the canonical SHA-256 hex digest of a record's
// defining fields. Subject IDs are sorted in a copy so input order never
// changes the hash.
func ResultHash(record *types.AuditRecord) string {
	subjects := make([]string, len(record.SubjectIDs))
	copy(subjects, record.SubjectIDs)
	sort.Strings(subjects)

	payload := hashPayload{
		Action:     record.Action,
		BlindMode:  record.BlindMode,
		Filters:    record.Filters,
		SubjectIDs: subjects,
		Timestamp:  record.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		// Marshal of strings, bools, and string maps cannot fail.
		return ""
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the result hash for a stored record and compares it to
// the stored value. A false result means the record was altered after being
// appended.
func (l *Ledger) Verify(ctx context.Context, auditID string) (bool, error) {
	record, err := l.store.Get(ctx, auditID)
	if err != nil {
		return false, fmt.Errorf("failed to load audit record: %w", err)
	}
	return ResultHash(record) == record.ResultHash, nil
}

// Query returns matching records newest first.
func (l *Ledger) Query(ctx context.Context, filters types.AuditFilters) ([]*types.AuditRecord, error) {
	records, err := l.store.Query(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	return records, nil
}

// Stats summarizes the records matching the filters. Percentages and
// uniqueness are computed over the filtered set only.
func (l *Ledger) Stats(ctx context.Context, filters types.AuditFilters) (*types.AuditStats, error) {
	records, err := l.store.Query(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}

	stats := &types.AuditStats{
		Total:           len(records),
		ActionBreakdown: make(map[string]int),
	}
	actors := make(map[string]struct{})
	subjects := make(map[string]struct{})
	for _, record := range records {
		stats.ActionBreakdown[record.Action]++
		if record.BlindMode {
			stats.BlindModeCount++
		}
		actors[record.ActorID] = struct{}{}
		for _, id := range record.SubjectIDs {
			subjects[id] = struct{}{}
		}
	}
	stats.UniqueActors = len(actors)
	stats.UniqueSubjects = len(subjects)
	if stats.Total > 0 {
		stats.BlindModePct = float64(stats.BlindModeCount) / float64(stats.Total) * 100
	}
	return stats, nil
}

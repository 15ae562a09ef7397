package types

import "time"

// Audited action kinds.
const (
	ActionRank      = "rank"
	ActionExplain   = "explain"
	ActionShortlist = "shortlist"
	ActionCompare   = "compare"
)

// AuditRecord is an append-only entry capturing who did what to whom,
// with a verifiable hash of the action's defining fields.
type AuditRecord struct {
	AuditID    string            `json:"audit_id"`
	ActorID    string            `json:"actor_id"`
	Action     string            `json:"action"`
	SubjectIDs []string          `json:"subject_ids"`
	Filters    map[string]string `json:"filters,omitempty"`
	BlindMode  bool              `json:"blind_mode"`
	ResultHash string            `json:"result_hash"`
	Timestamp  time.Time         `json:"timestamp"`
}

// AuditFilters narrows an audit query. Zero values mean "no filter".
type AuditFilters struct {
	ActorID   string
	Action    string
	SubjectID string
	Start     time.Time
	End       time.Time
	Limit     int
}

// AuditStats summarizes a filtered set of audit records.
type AuditStats struct {
	Total           int            `json:"total_audits"`
	ActionBreakdown map[string]int `json:"action_breakdown"`
	BlindModeCount  int            `json:"blind_mode_usage"`
	BlindModePct    float64        `json:"blind_mode_percentage"`
	UniqueActors    int            `json:"unique_actors"`
	UniqueSubjects  int            `json:"unique_subjects"`
}

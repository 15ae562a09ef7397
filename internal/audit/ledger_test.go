package audit

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func newTestLedger(t *testing.T) (*Ledger, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewLedger(store, zaptest.NewLogger(t)), store
}

func TestRecord_AssignsIDHashAndTimestamp(t *testing.T) {
	ledger, _ := newTestLedger(t)

	record, err := ledger.Record(context.Background(), "recruiter-1", types.ActionExplain,
		[]string{"cand-1"}, map[string]string{"job_id": "job-1"}, false)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^AUD-\d{4}-\d{2}-\d{2}-\d{4}$`), record.AuditID)
	assert.Len(t, record.ResultHash, 64)
	assert.False(t, record.Timestamp.IsZero())
}

func TestRecord_SequentialIDsWithinDay(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	first, err := ledger.Record(ctx, "a", types.ActionRank, nil, nil, false)
	require.NoError(t, err)
	second, err := ledger.Record(ctx, "a", types.ActionRank, nil, nil, false)
	require.NoError(t, err)

	day := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, fmt.Sprintf("AUD-%s-0001", day), first.AuditID)
	assert.Equal(t, fmt.Sprintf("AUD-%s-0002", day), second.AuditID)
}

func TestRecord_ConcurrentAppendsMintUniqueIDs(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := ledger.Record(ctx, "actor", types.ActionRank, nil, nil, false)
			assert.NoError(t, err)
			ids <- record.AuditID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate audit ID %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestRecord_RequiresActorAndAction(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "", types.ActionRank, nil, nil, false)
	assert.Error(t, err)

	_, err = ledger.Record(ctx, "actor", "", nil, nil, false)
	assert.Error(t, err)
}

func TestResultHash_IndependentOfSubjectOrder(t *testing.T) {
	timestamp := time.Now().UTC()
	a := &types.AuditRecord{Action: types.ActionRank, SubjectIDs: []string{"c1", "c2"}, Timestamp: timestamp}
	b := &types.AuditRecord{Action: types.ActionRank, SubjectIDs: []string{"c2", "c1"}, Timestamp: timestamp}

	assert.Equal(t, ResultHash(a), ResultHash(b))
	// Sorting happens on a copy; the record keeps its order.
	assert.Equal(t, []string{"c1", "c2"}, a.SubjectIDs)
	assert.Equal(t, []string{"c2", "c1"}, b.SubjectIDs)
}

func TestVerify_TrueThenFalseAfterMutation(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()

	record, err := ledger.Record(ctx, "recruiter-1", types.ActionShortlist,
		[]string{"cand-1", "cand-2"}, nil, true)
	require.NoError(t, err)

	ok, err := ledger.Verify(ctx, record.AuditID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Tamper with the stored record behind the ledger's back.
	stored := store.byID[record.AuditID]
	stored.SubjectIDs = append(stored.SubjectIDs, "cand-3")

	ok, err = ledger.Verify(ctx, record.AuditID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UnknownID(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.Verify(context.Background(), "AUD-2026-01-01-0001")
	assert.Error(t, err)
}

func TestQuery_FiltersAndOrder(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "alice", types.ActionRank, []string{"c1"}, nil, false)
	require.NoError(t, err)
	_, err = ledger.Record(ctx, "bob", types.ActionExplain, []string{"c2"}, nil, false)
	require.NoError(t, err)
	_, err = ledger.Record(ctx, "alice", types.ActionExplain, []string{"c1"}, nil, true)
	require.NoError(t, err)

	records, err := ledger.Query(ctx, types.AuditFilters{ActorID: "alice"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = ledger.Query(ctx, types.AuditFilters{Action: types.ActionExplain})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = ledger.Query(ctx, types.AuditFilters{SubjectID: "c2"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bob", records[0].ActorID)

	// Unfiltered queries return newest first.
	records, err = ledger.Query(ctx, types.AuditFilters{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].Timestamp.Before(records[i].Timestamp))
	}
}

func TestQuery_LimitApplied(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := ledger.Record(ctx, "actor", types.ActionRank, nil, nil, false)
		require.NoError(t, err)
	}

	records, err := ledger.Query(ctx, types.AuditFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStats_OverFilteredSet(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "alice", types.ActionRank, []string{"c1", "c2"}, nil, true)
	require.NoError(t, err)
	_, err = ledger.Record(ctx, "alice", types.ActionExplain, []string{"c1"}, nil, false)
	require.NoError(t, err)
	_, err = ledger.Record(ctx, "bob", types.ActionRank, []string{"c3"}, nil, true)
	require.NoError(t, err)

	stats, err := ledger.Stats(ctx, types.AuditFilters{ActorID: "alice"})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ActionBreakdown[types.ActionRank])
	assert.Equal(t, 1, stats.ActionBreakdown[types.ActionExplain])
	assert.Equal(t, 1, stats.BlindModeCount)
	assert.InDelta(t, 50.0, stats.BlindModePct, 0.01)
	assert.Equal(t, 1, stats.UniqueActors)
	assert.Equal(t, 2, stats.UniqueSubjects)
}

func TestNewAuditID_FallbackOnCountFailure(t *testing.T) {
	ledger := NewLedger(&failingCountStore{}, zaptest.NewLogger(t))

	id := ledger.newAuditID(context.Background(), time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))

	assert.Regexp(t, regexp.MustCompile(`^AUD-2026-08-27-\d{13}$`), id)
}

// failingCountStore fails day counts to exercise the timestamp fallback.
type failingCountStore struct {
	MemoryStore
}

func (s *failingCountStore) CountOnDate(context.Context, time.Time) (int, error) {
	return 0, fmt.Errorf("store unavailable")
}

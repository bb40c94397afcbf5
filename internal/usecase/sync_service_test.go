package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	cockroacherrors "github.com/cockroachdb/errors"

	"github.com/fleetops/fleet-sync/internal/domain/payload"
	"github.com/fleetops/fleet-sync/internal/domain/production"
	"github.com/fleetops/fleet-sync/internal/domain/team"
	"github.com/fleetops/fleet-sync/internal/domain/teamcode"
)

type stubTeamRepo struct {
	teams []team.Team
	err   error
}

func (s stubTeamRepo) List(_ context.Context) ([]team.Team, error) {
	return s.teams, s.err
}

type recordingProductionRepo struct {
	mu           sync.Mutex
	replaceCalls int
	current      []production.Record
	err          error
}

func (r *recordingProductionRepo) ReplaceAll(_ context.Context, records []production.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.replaceCalls++
	if r.err != nil {
		return r.err
	}
	r.current = append([]production.Record(nil), records...)
	return nil
}

func (r *recordingProductionRepo) snapshot() []production.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]production.Record(nil), r.current...)
}

func newTestService(t *testing.T, teamRepo team.Repository, productionRepo production.Repository) *SyncService {
	t.Helper()

	codes, err := teamcode.Load("")
	if err != nil {
		t.Fatalf("load team code table: %v", err)
	}
	return NewSyncService(teamRepo, productionRepo, codes, 0, nil)
}

var syncTestTeams = []team.Team{
	{ID: 1, Name: "GOOO101M"},
	{ID: 2, Name: "GOOO102M"},
}

func TestSyncService_Sync_EmptyBodyLeavesSnapshotUntouched(t *testing.T) {
	t.Parallel()

	repo := &recordingProductionRepo{}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	_, err := svc.Sync(context.Background(), []byte("   "))
	if !errors.Is(err, payload.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if repo.replaceCalls != 0 {
		t.Fatalf("snapshot must not be touched on empty body, got %d replace calls", repo.replaceCalls)
	}
}

func TestSyncService_Sync_NoRowsFoundCarriesShapeHint(t *testing.T) {
	t.Parallel()

	repo := &recordingProductionRepo{}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	_, err := svc.Sync(context.Background(), []byte(`{"unexpected": true}`))
	if !errors.Is(err, ErrNoRowsFound) {
		t.Fatalf("expected ErrNoRowsFound, got %v", err)
	}
	if hints := cockroacherrors.GetAllHints(err); len(hints) == 0 {
		t.Fatal("expected a shape hint on the error")
	}
	if repo.replaceCalls != 0 {
		t.Fatal("snapshot must not be touched when no rows were found")
	}
}

func TestSyncService_Sync_AggregatesNormalizesAndReplaces(t *testing.T) {
	t.Parallel()

	repo := &recordingProductionRepo{}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	body := `{"rows": [
		{"equipe": "803006", "data": "2025-06-01T00:00:00", "producao": 10},
		{"equipe": "803006A", "data": "2025-06-01", "producao": 4},
		{"team_code": "803007", "date": "2025-06-01", "production": 6},
		{"equipe": "999999", "data": "2025-06-01", "producao": 99},
		{"equipe": "803006", "data": "not-a-date", "producao": 1}
	]}`

	report, err := svc.Sync(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if report.TotalReceived != 5 {
		t.Fatalf("expected 5 received, got %d", report.TotalReceived)
	}
	if report.Ignored != 2 {
		t.Fatalf("expected 2 ignored, got %d", report.Ignored)
	}
	if report.Inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", report.Inserted)
	}

	records := repo.snapshot()
	if len(records) != 2 {
		t.Fatalf("expected 2 persisted records, got %d", len(records))
	}
	if records[0] != (production.Record{TeamID: 1, Date: "2025-06-01", Value: 14}) {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1] != (production.Record{TeamID: 2, Date: "2025-06-01", Value: 6}) {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestSyncService_Sync_ConcatenatedPayloadsSumRowCounts(t *testing.T) {
	t.Parallel()

	repo := &recordingProductionRepo{}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	body := `{"rows": [{"equipe": "803006", "data": "2025-06-01", "producao": 1}]}` +
		`{"rows": [{"equipe": "803007", "data": "2025-06-02", "producao": 2}, {"equipe": "803007", "data": "2025-06-02", "producao": 3}]}`

	report, err := svc.Sync(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if report.TotalReceived != 3 {
		t.Fatalf("expected total_received 3 across both documents, got %d", report.TotalReceived)
	}
	if report.Inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", report.Inserted)
	}
}

func TestSyncService_Sync_Idempotence(t *testing.T) {
	t.Parallel()

	repo := &recordingProductionRepo{}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	body := []byte(`{"rows": [
		{"equipe": "803006", "data": "2025-06-01", "producao": 10},
		{"equipe": "803007", "data": "2025-06-01", "producao": 5}
	]}`)

	first, err := svc.Sync(context.Background(), body)
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}
	firstRecords := repo.snapshot()

	second, err := svc.Sync(context.Background(), body)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	secondRecords := repo.snapshot()

	if first != second {
		t.Fatalf("reports differ: %+v vs %+v", first, second)
	}
	if len(firstRecords) != len(secondRecords) {
		t.Fatalf("record counts differ: %d vs %d", len(firstRecords), len(secondRecords))
	}
	for i := range firstRecords {
		if firstRecords[i] != secondRecords[i] {
			t.Fatalf("record %d differs: %+v vs %+v", i, firstRecords[i], secondRecords[i])
		}
	}
}

func TestSyncService_Sync_FullReplaceDropsDisjointPairs(t *testing.T) {
	t.Parallel()

	repo := &recordingProductionRepo{current: []production.Record{
		{TeamID: 1, Date: "2025-05-30", Value: 50},
		{TeamID: 2, Date: "2025-05-31", Value: 60},
	}}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	_, err := svc.Sync(context.Background(), []byte(`{"rows": [{"equipe": "803006", "data": "2025-06-01", "producao": 1}]}`))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	records := repo.snapshot()
	if len(records) != 1 {
		t.Fatalf("expected old pairs to be gone, got %+v", records)
	}
	if records[0].Date != "2025-06-01" {
		t.Fatalf("unexpected surviving record: %+v", records[0])
	}
}

func TestSyncService_Sync_StorageFailures(t *testing.T) {
	t.Parallel()

	validBody := []byte(`{"rows": [{"equipe": "803006", "data": "2025-06-01", "producao": 1}]}`)

	svc := newTestService(t, stubTeamRepo{err: errors.New("connection refused")}, &recordingProductionRepo{})
	if _, err := svc.Sync(context.Background(), validBody); !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("team list failure: expected ErrStorageFailure, got %v", err)
	}

	svc = newTestService(t, stubTeamRepo{teams: syncTestTeams}, &recordingProductionRepo{err: errors.New("deadlock detected")})
	_, err := svc.Sync(context.Background(), validBody)
	if !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("replace failure: expected ErrStorageFailure, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "deadlock detected") {
		t.Fatalf("expected underlying store message to be preserved, got %q", got)
	}
}

type slowProductionRepo struct {
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (r *slowProductionRepo) ReplaceAll(_ context.Context, _ []production.Record) error {
	if r.inFlight.Add(1) > 1 {
		r.overlap.Store(true)
	}
	time.Sleep(5 * time.Millisecond)
	r.inFlight.Add(-1)
	return nil
}

func TestSyncService_Sync_SerializesConcurrentRuns(t *testing.T) {
	t.Parallel()

	repo := &slowProductionRepo{}
	svc := newTestService(t, stubTeamRepo{teams: syncTestTeams}, repo)

	body := []byte(`{"rows": [{"equipe": "803006", "data": "2025-06-01", "producao": 1}]}`)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Sync(context.Background(), body); err != nil {
				t.Errorf("concurrent sync: %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.overlap.Load() {
		t.Fatal("snapshot replaces overlapped; concurrent runs must be serialized")
	}
}

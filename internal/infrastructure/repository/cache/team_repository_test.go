package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleetops/fleet-sync/internal/domain/team"
	basecache "github.com/fleetops/fleet-sync/internal/platform/cache"
)

type countingTeamRepo struct {
	calls int
	teams []team.Team
	err   error
}

func (r *countingTeamRepo) List(context.Context) ([]team.Team, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.teams, nil
}

func TestTeamRepository_ListCachesRoster(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepo{teams: []team.Team{{ID: 1, Name: "GOOO101M"}}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if next.calls != 1 {
		t.Fatalf("underlying repo called %d times, want 1", next.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("unexpected list sizes %d and %d", len(first), len(second))
	}

	// Mutating the returned slice must not leak into the cached copy.
	first[0].Name = "mutated"
	third, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("third list: %v", err)
	}
	if third[0].Name != "GOOO101M" {
		t.Fatalf("cached roster was mutated: %q", third[0].Name)
	}
}

func TestTeamRepository_ListErrorNotCached(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepo{err: errors.New("connection refused")}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatalf("expected error from underlying repo")
	}

	next.err = nil
	next.teams = []team.Team{{ID: 2, Name: "GOOO102M"}}
	teams, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list after recovery: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != 2 {
		t.Fatalf("unexpected teams after recovery: %+v", teams)
	}
}

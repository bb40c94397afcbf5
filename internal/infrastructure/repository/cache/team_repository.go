package cache

import (
	"context"

	"github.com/fleetops/fleet-sync/internal/domain/team"
	basecache "github.com/fleetops/fleet-sync/internal/platform/cache"
)

const teamListKey = "team:list"

// TeamRepository caches the team roster in front of postgres. The roster
// changes rarely while every sync run reads it, so a short TTL removes most
// of the per-run query load.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

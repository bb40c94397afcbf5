package usecase

import (
	"context"
	"fmt"

	"github.com/fleetops/fleet-sync/internal/domain/team"
)

// TeamService exposes the team read used by the admin UI. The team table
// itself is owned by the administration subsystem.
type TeamService struct {
	repo team.Repository
}

func NewTeamService(repo team.Repository) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list teams: %v", ErrStorageFailure, err)
	}

	return teams, nil
}

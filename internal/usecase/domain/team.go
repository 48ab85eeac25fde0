// Package domain contains application usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

// CreateTeam creates an empty team with the given name.
func (u *Usecase) CreateTeam(ctx context.Context, name string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := entities.NewTeam(entities.Fields{"name": name})
	if err != nil {
		return nil, err
	}

	if err := u.repo.SaveTeam(ctx, team); err != nil {
		return nil, err
	}

	u.log.Infow("team created", "team_id", team.ID(), "name", team.Name())
	return team, nil
}

// Team returns the team with the given id, members included.
func (u *Usecase) Team(ctx context.Context, teamID int64) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID == 0 {
		return nil, fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetTeam(ctx, entities.TeamSelector{ID: teamID})
}

// Teams returns all current teams.
func (u *Usecase) Teams(ctx context.Context) ([]*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.AllTeams(ctx)
}

// DeleteTeam removes a team. A team that still has members cannot be deleted.
func (u *Usecase) DeleteTeam(ctx context.Context, teamID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID == 0 {
		return fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}

	team, err := u.repo.GetTeam(ctx, entities.TeamSelector{ID: teamID})
	if err != nil {
		return err
	}
	if err := u.repo.DeleteTeam(ctx, team); err != nil {
		return err
	}

	u.log.Infow("team deleted", "team_id", teamID, "name", team.Name())
	return nil
}

// Package domain contains application usecases orchestrating domain logic for reporting.
package domain

import (
	"context"
	"errors"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

// BestUsers returns the top volunteers by total effort duration, each entry
// annotated with its team name.
func (u *Usecase) BestUsers(ctx context.Context, limit int) ([]entities.UserRank, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	users, err := u.repo.AllUsers(ctx)
	if err != nil {
		return nil, err
	}

	ranks := entities.RankUsers(users, limit)
	for i := range ranks {
		teamID, err := u.repo.GetUserTeam(ctx, ranks[i].User)
		if err != nil {
			if errors.Is(err, entities.ErrTeamNotFound) {
				continue
			}
			return nil, err
		}
		team, err := u.repo.GetTeam(ctx, entities.TeamSelector{ID: teamID})
		if err != nil {
			return nil, err
		}
		ranks[i].TeamName = team.Name()
	}

	return ranks, nil
}

// BestTeams returns the top teams by total effort duration of their members.
func (u *Usecase) BestTeams(ctx context.Context, limit int) ([]entities.TeamRank, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	teams, err := u.repo.AllTeams(ctx)
	if err != nil {
		return nil, err
	}
	return entities.RankTeams(teams, limit), nil
}

// Package domain contains application usecases orchestrating domain logic by user.
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

// CreateUser constructs a user from primitive arguments, persists it and
// records its team membership.
func (u *Usecase) CreateUser(ctx context.Context, username, firstName, lastName, email string, teamID int64) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID == 0 {
		return nil, fmt.Errorf("%w: team is required", entities.ErrInvalidArgument)
	}

	user, err := entities.NewUser(entities.Fields{
		"username":   username,
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	})
	if err != nil {
		return nil, err
	}

	if err := u.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := u.repo.SetUserTeam(ctx, user, teamID); err != nil {
		return nil, err
	}

	u.log.Infow("user created", "user_id", user.ID(), "username", user.Username(), "team_id", teamID)
	return user, nil
}

// User returns the user with the given id, efforts included.
func (u *Usecase) User(ctx context.Context, userID int64) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetUser(ctx, entities.UserSelector{ID: userID})
}

// Users returns all current users.
func (u *Usecase) Users(ctx context.Context) ([]*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.AllUsers(ctx)
}

// AddEffort records a new block of volunteer work for a user. The effort must
// not overlap any already recorded one.
func (u *Usecase) AddEffort(ctx context.Context, userID int64, startTime time.Time, duration time.Duration, latitude, longitude float64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == 0 {
		return fmt.Errorf("%w: user id is required", entities.ErrInvalidArgument)
	}

	user, err := u.repo.GetUser(ctx, entities.UserSelector{ID: userID})
	if err != nil {
		return err
	}

	effort, err := entities.NewEffort(entities.Fields{
		"start_time": startTime,
		"duration":   duration,
		"latitude":   latitude,
		"longitude":  longitude,
	})
	if err != nil {
		return err
	}
	if err := user.AddEffort(effort); err != nil {
		return err
	}

	if err := u.repo.SaveUser(ctx, user); err != nil {
		return err
	}

	u.log.Infow("effort recorded", "user_id", userID, "effort", effort.String())
	return nil
}

// UserTeam returns the team a user belongs to.
func (u *Usecase) UserTeam(ctx context.Context, user *entities.User) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	teamID, err := u.repo.GetUserTeam(ctx, user)
	if err != nil {
		return nil, err
	}
	return u.repo.GetTeam(ctx, entities.TeamSelector{ID: teamID})
}

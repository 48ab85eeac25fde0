// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user aggregate operations.
type UserInterface interface {
	GetUser(ctx context.Context, sel entities.UserSelector) (*entities.User, error)
	AllUsers(ctx context.Context) ([]*entities.User, error)
	SaveUser(ctx context.Context, user *entities.User) error
	DeleteUser(ctx context.Context, user *entities.User) error
	SetUserTeam(ctx context.Context, user *entities.User, teamID int64) error
	GetUserTeam(ctx context.Context, user *entities.User) (int64, error)
}

// TeamInterface exposes team aggregate operations.
type TeamInterface interface {
	GetTeam(ctx context.Context, sel entities.TeamSelector) (*entities.Team, error)
	AllTeams(ctx context.Context) ([]*entities.Team, error)
	SaveTeam(ctx context.Context, team *entities.Team) error
	DeleteTeam(ctx context.Context, team *entities.Team) error
}

package usecase

import (
	"context"
	"time"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

// UserUsecaseInterface abstracts user-related operations for delivery layer.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, username, firstName, lastName, email string, teamID int64) (*entities.User, error)
	User(ctx context.Context, userID int64) (*entities.User, error)
	Users(ctx context.Context) ([]*entities.User, error)
	AddEffort(ctx context.Context, userID int64, startTime time.Time, duration time.Duration, latitude, longitude float64) error
	UserTeam(ctx context.Context, user *entities.User) (*entities.Team, error)
}

// TeamUsecaseInterface abstracts team-related operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, name string) (*entities.Team, error)
	Team(ctx context.Context, teamID int64) (*entities.Team, error)
	Teams(ctx context.Context) ([]*entities.Team, error)
	DeleteTeam(ctx context.Context, teamID int64) error
}

// LeaderboardUsecaseInterface abstracts aggregate reporting operations.
type LeaderboardUsecaseInterface interface {
	BestUsers(ctx context.Context, limit int) ([]entities.UserRank, error)
	BestTeams(ctx context.Context, limit int) ([]entities.TeamRank, error)
}

// Package usecase exposes the application operation interfaces.
package usecase

import (
	"context"
	"time"

	"github.com/mrbrowning/leaderboard/internal/repository"
	"github.com/mrbrowning/leaderboard/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
	TeamUsecaseInterface
	LeaderboardUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout)
}

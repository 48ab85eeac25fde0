// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/mrbrowning/leaderboard/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the application operations over HTTP.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  uc,
	}
}

// Register mounts all routes on the fiber app. Leaderboard routes precede the
// parameterized ones so "best" is not captured as an id.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/users", h.CreateUser)
	app.Get("/users", h.ListUsers)
	app.Get("/users/best", h.BestUsers)
	app.Get("/users/:id", h.GetUser)
	app.Post("/users/:id/efforts", h.AddEffort)

	app.Post("/teams", h.CreateTeam)
	app.Get("/teams", h.ListTeams)
	app.Get("/teams/best", h.BestTeams)
	app.Get("/teams/:id", h.GetTeam)
	app.Delete("/teams/:id", h.DeleteTeam)
}

package handlers_fiber

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mrbrowning/leaderboard/internal/api"
	"github.com/mrbrowning/leaderboard/internal/entities"
	"github.com/mrbrowning/leaderboard/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a new volunteer on a team.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var body api.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid body"))
	}

	user, err := h.uc.CreateUser(c.Context(), body.Username, body.FirstName, body.LastName, body.Email, body.Team)
	if err != nil {
		h.log.Errorw("failed to create user", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(api.CreatedResponse{ID: user.ID()})
}

// GetUser returns a volunteer's profile with its efforts.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid user id"))
	}

	user, err := h.uc.User(c.Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIUser(user))
}

// ListUsers returns all volunteers.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.Users(c.Context())
	if err != nil {
		h.log.Errorw("failed to list users", "error", err.Error())
		return writeError(c, err)
	}

	resp := api.UsersResponse{Users: make([]api.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, mapper.ToAPIUser(u))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// AddEffort records a new block of volunteer work for a user.
func (h *Handler) AddEffort(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid user id"))
	}

	var body api.AddEffortRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid body"))
	}

	startTime, err := time.Parse(entities.TimeLayout, body.StartTime)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid start_time"))
	}

	duration := time.Duration(body.Duration) * time.Second
	if err := h.uc.AddEffort(c.Context(), userID, startTime, duration, body.Latitude, body.Longitude); err != nil {
		h.log.Errorw("failed to add effort", "error", err.Error(), "user_id", userID)
		return writeError(c, err)
	}

	return c.SendStatus(http.StatusCreated)
}

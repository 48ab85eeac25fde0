package handlers_fiber

import (
	"net/http"
	"strconv"

	"github.com/mrbrowning/leaderboard/internal/api"
	"github.com/mrbrowning/leaderboard/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam creates a new empty team.
func (h *Handler) CreateTeam(c *fiber.Ctx) error {
	var body api.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid body"))
	}

	team, err := h.uc.CreateTeam(c.Context(), body.Name)
	if err != nil {
		h.log.Errorw("failed to create team", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(api.CreatedResponse{ID: team.ID()})
}

// GetTeam returns a team with its members.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	teamID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid team id"))
	}

	team, err := h.uc.Team(c.Context(), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(team))
}

// ListTeams returns all teams.
func (h *Handler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.uc.Teams(c.Context())
	if err != nil {
		h.log.Errorw("failed to list teams", "error", err.Error())
		return writeError(c, err)
	}

	resp := api.TeamsResponse{Teams: make([]api.Team, 0, len(teams))}
	for _, t := range teams {
		resp.Teams = append(resp.Teams, mapper.ToAPITeam(t))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// DeleteTeam removes an empty team.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	teamID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.CodeValidation, "invalid team id"))
	}

	if err := h.uc.DeleteTeam(c.Context(), teamID); err != nil {
		h.log.Errorw("failed to delete team", "error", err.Error(), "team_id", teamID)
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

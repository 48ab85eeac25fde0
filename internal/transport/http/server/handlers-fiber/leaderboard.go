package handlers_fiber

import (
	"net/http"
	"strconv"

	"github.com/mrbrowning/leaderboard/internal/api"
	"github.com/mrbrowning/leaderboard/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// BestUsers returns the top volunteers by total effort duration.
func (h *Handler) BestUsers(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("num_users"))

	ranks, err := h.uc.BestUsers(c.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to get best users", "error", err.Error())
		return writeError(c, err)
	}

	resp := api.BestUsersResponse{Users: make([]api.UserRank, 0, len(ranks))}
	for _, r := range ranks {
		resp.Users = append(resp.Users, mapper.ToAPIUserRank(r))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// BestTeams returns the top teams by total effort duration.
func (h *Handler) BestTeams(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("num_teams"))

	ranks, err := h.uc.BestTeams(c.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to get best teams", "error", err.Error())
		return writeError(c, err)
	}

	resp := api.BestTeamsResponse{Teams: make([]api.TeamRank, 0, len(ranks))}
	for _, r := range ranks {
		resp.Teams = append(resp.Teams, mapper.ToAPITeamRank(r))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// parseLimit reads a top-N cut from a query parameter; zero means all.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

package handlers_fiber

import (
	"errors"
	"net/http"

	"github.com/mrbrowning/leaderboard/internal/api"
	"github.com/mrbrowning/leaderboard/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.CodeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrMissingField),
		errors.Is(err, entities.ErrUnknownField),
		errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.CodeValidation
		msg = err.Error()
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrTeamNotFound):
		status = http.StatusNotFound
		code = api.CodeNotFound
		msg = "resource not found"
	case errors.Is(err, entities.ErrUserExists):
		status = http.StatusConflict
		code = api.CodeUserExists
		msg = "username already exists"
	case errors.Is(err, entities.ErrTeamExists):
		status = http.StatusConflict
		code = api.CodeTeamExists
		msg = "team name already exists"
	case errors.Is(err, entities.ErrTeamNotEmpty):
		status = http.StatusConflict
		code = api.CodeTeamNotEmpty
		msg = "a team with users cannot be deleted"
	case errors.Is(err, entities.ErrConstraint):
		status = http.StatusConflict
		code = api.CodeConstraint
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorCode, msg string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorBody{Code: code, Message: msg}}
}

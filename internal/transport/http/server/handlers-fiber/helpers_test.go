package handlers_fiber

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrbrowning/leaderboard/internal/api"
	"github.com/mrbrowning/leaderboard/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func writeErrorResponse(t *testing.T, err error) (*http.Response, api.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, err)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, testErr := app.Test(req)
	require.NoError(t, testErr)
	t.Cleanup(func() { resp.Body.Close() })

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestWriteErrorValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "missing field", err: entities.ErrMissingField},
		{name: "unknown field", err: entities.ErrUnknownField},
		{name: "validation", err: entities.ErrValidation},
		{name: "invalid argument", err: entities.ErrInvalidArgument},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, body := writeErrorResponse(t, tt.err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.Equal(t, api.CodeValidation, body.Error.Code)
			require.Equal(t, tt.err.Error(), body.Error.Message)
		})
	}
}

func TestWriteErrorNotFound(t *testing.T) {
	for _, err := range []error{entities.ErrUserNotFound, entities.ErrTeamNotFound} {
		resp, body := writeErrorResponse(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.Equal(t, api.CodeNotFound, body.Error.Code)
		require.Equal(t, "resource not found", body.Error.Message)
	}
}

func TestWriteErrorConflicts(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    api.ErrorCode
		message string
	}{
		{
			name: "user exists", err: entities.ErrUserExists,
			code: api.CodeUserExists, message: "username already exists",
		},
		{
			name: "team exists", err: entities.ErrTeamExists,
			code: api.CodeTeamExists, message: "team name already exists",
		},
		{
			name: "team not empty", err: entities.ErrTeamNotEmpty,
			code: api.CodeTeamNotEmpty, message: "a team with users cannot be deleted",
		},
		{
			name: "effort overlap", err: entities.ErrEffortOverlap,
			code: api.CodeConstraint, message: entities.ErrEffortOverlap.Error(),
		},
		{
			name: "duplicate member", err: entities.ErrDuplicateMember,
			code: api.CodeConstraint, message: entities.ErrDuplicateMember.Error(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, body := writeErrorResponse(t, tt.err)
			require.Equal(t, http.StatusConflict, resp.StatusCode)
			require.Equal(t, tt.code, body.Error.Code)
			require.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestWriteErrorInternalHidesDetails(t *testing.T) {
	resp, body := writeErrorResponse(t, errors.New("pool exhausted"))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, api.CodeInternal, body.Error.Code)
	require.Equal(t, "internal error", body.Error.Message)
}

func TestParseLimit(t *testing.T) {
	require.Equal(t, 0, parseLimit(""))
	require.Equal(t, 0, parseLimit("abc"))
	require.Equal(t, 0, parseLimit("-3"))
	require.Equal(t, 5, parseLimit("5"))
}

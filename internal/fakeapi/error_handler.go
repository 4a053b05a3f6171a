package fakeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// newHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known store errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, errEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errUsernameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errEmailNotVerified):
		return http.StatusForbidden, "Please verify your email before logging in."
	case errors.Is(err, errTokenInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errProfileMissing):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errPostNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errCommentNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errFollowNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errFollowExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

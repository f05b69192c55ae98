package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

// errorResponse is the JSON error envelope. Details lists the failed field
// rules when the error came from input validation.
type errorResponse struct {
	Error   string             `json:"error"`
	Details []ports.FieldError `json:"details,omitempty"`
}

// NewHTTPErrorHandler renders errors that escape a handler as JSON. Account
// sentinels get fixed status codes; anything else is logged and reported as
// a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var invalid *ports.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "invalid input",
			Details: invalid.Result.Errors,
		}
	}

	switch {
	case errors.Is(err, domain.ErrEmailRequired):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   err.Error(),
			Details: []ports.FieldError{{Field: "email", Code: "required", Message: "Email is required."}},
		}
	case errors.Is(err, domain.ErrSuperuserFlags):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{
			Error:   "user already exists",
			Details: []ports.FieldError{{Field: "email", Code: "duplicate", Message: "A user with this email already exists."}},
		}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

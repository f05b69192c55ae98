package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

const routerSecret = "0123456789abcdef0123456789abcdef"

type stubRegistration struct{}

func (stubRegistration) Register(_ context.Context, in ports.RegistrationInput) *ports.RegistrationResult {
	return &ports.RegistrationResult{
		Outcome: ports.OutcomeCreated,
		User:    &domain.User{ID: "1", Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Role: domain.RoleUser},
	}
}

type stubAdmin struct{}

func (stubAdmin) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (stubAdmin) ListUsers(_ context.Context, p ports.Page) (*ports.UserPage, error) {
	return &ports.UserPage{Page: 1, Limit: 50, TotalPages: 0}, nil
}

type nopFlashes struct{}

func (nopFlashes) Push(context.Context, string, domain.Flash) error    { return nil }
func (nopFlashes) Pop(context.Context, string) ([]domain.Flash, error) { return nil, nil }

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	e, err := NewRouter(Dependencies{
		Registration: stubRegistration{},
		Admin:        stubAdmin{},
		Flashes:      nopFlashes{},
		JWTSecret:    routerSecret,
		TokenTTL:     time.Hour,
		Log:          zerolog.Nop(),
	})
	require.NoError(t, err)
	return e
}

func bearer(t *testing.T, staff bool) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "1",
		"email":    "ada@example.com",
		"role":     "admin",
		"is_staff": staff,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestRouter_CreateUserRoundTrip(t *testing.T) {
	e := newTestRouter(t)

	get := httptest.NewRecorder()
	e.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/users/create/", nil))
	require.Equal(t, http.StatusOK, get.Code)
	require.Contains(t, get.Body.String(), `<form method="post" action="/users/create/">`)

	form := url.Values{"email": {"alice@example.com"}, "first_name": {"Alice"}, "last_name": {"Smith"}, "password": {"Password1"}}
	req := httptest.NewRequest(http.MethodPost, "/users/create/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	post := httptest.NewRecorder()
	e.ServeHTTP(post, req)

	require.Equal(t, http.StatusSeeOther, post.Code)
	require.Equal(t, "/admin/users/", post.Header().Get(echo.HeaderLocation))
}

func TestRouter_AdminUsersRequiresStaff(t *testing.T) {
	e := newTestRouter(t)

	t.Run("browser without session is sent to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users/", nil)
		req.Header.Set(echo.HeaderAccept, "text/html")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/admin/login/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("api client without token gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non staff token gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users/", nil)
		req.Header.Set("Authorization", bearer(t, false))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff token lists users", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users/", nil)
		req.Header.Set("Authorization", bearer(t, true))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "No users yet.")
	})
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e := newTestRouter(t)

	health := httptest.NewRecorder()
	e.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, health.Code)

	ready := httptest.NewRecorder()
	e.ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, ready.Code)

	m := httptest.NewRecorder()
	e.ServeHTTP(m, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, m.Code)
	require.Contains(t, m.Body.String(), "accounts_")
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/api/metrics"
	"github.com/firstapp/accounts/internal/api/middleware"
	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

// LoginPath is the admin login page.
const LoginPath = "/admin/login/"

// SessionCookie configures the admin session cookie.
type SessionCookie struct {
	Secure bool
	TTL    time.Duration
}

// AdminHandler serves the staff-only area.
type AdminHandler struct {
	admin   ports.AdminService
	flashes *Flashes
	cookie  SessionCookie
	log     zerolog.Logger
}

func NewAdminHandler(admin ports.AdminService, flashes *Flashes, cookie SessionCookie, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, flashes: flashes, cookie: cookie, log: log}
}

type loginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type loginPage struct {
	page
	Email string
}

type userListPage struct {
	page
	StaffEmail string
	Result     *ports.UserPage
	PrevPage   int
	NextPage   int
}

// LoginForm renders the admin login page.
//
// @Summary      Admin login form
// @Tags         admin
// @Produce      html
// @Success      200
// @Router       /admin/login/ [get]
func (h *AdminHandler) LoginForm(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, "", nil)
}

// Login authenticates a staff member and stores the session token in an
// HttpOnly cookie.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401
// @Failure      403
// @Failure      422
// @Router       /admin/login/ [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, "", []string{"The form submission could not be read."})
	}
	if err := c.Validate(&req); err != nil {
		return h.renderLogin(c, http.StatusUnprocessableEntity, req.Email, []string{err.Error()})
	}

	token, user, err := h.admin.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.AdminLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return h.renderLogin(c, http.StatusUnauthorized, req.Email,
			[]string{"Please enter the correct email and password for a staff account."})
	case errors.Is(err, domain.ErrForbidden):
		metrics.AdminLoginsTotal.WithLabelValues("forbidden").Inc()
		return h.renderLogin(c, http.StatusForbidden, req.Email,
			[]string{"This account cannot access the administration area."})
	case err != nil:
		metrics.AdminLoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.AdminLoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/admin/",
		MaxAge:   int(h.cookie.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.log.Info().Str("user_id", user.ID).Msg("staff login")
	h.flashes.Add(c, domain.FlashInfo, "Welcome, "+user.FirstName+".")
	return c.Redirect(http.StatusSeeOther, UserListPath)
}

// Logout clears the session cookie.
//
// @Summary      Admin logout
// @Tags         admin
// @Success      303
// @Router       /admin/logout/ [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/admin/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.flashes.Add(c, domain.FlashInfo, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// ListUsers renders one page of users, newest last.
//
// @Summary      List users
// @Tags         admin
// @Produce      html
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Page size (default 50, max 200)"
// @Success      200
// @Failure      401
// @Failure      403
// @Security     ApiKeyAuth
// @Router       /admin/users/ [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	pg := ports.Page{
		Number: queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	result, err := h.admin.ListUsers(c.Request().Context(), pg)
	if err != nil {
		return err
	}

	staffEmail, _ := c.Get("email").(string)
	data := userListPage{
		page:       page{Title: "Users", Flashes: h.flashes.Consume(c)},
		StaffEmail: staffEmail,
		Result:     result,
	}
	if result.Page > 1 {
		data.PrevPage = result.Page - 1
	}
	if result.Page < result.TotalPages {
		data.NextPage = result.Page + 1
	}
	return c.Render(http.StatusOK, PageUserList, data)
}

func (h *AdminHandler) renderLogin(c echo.Context, status int, email string, errs []string) error {
	data := loginPage{
		page:  page{Title: "Log in", Flashes: h.flashes.Consume(c)},
		Email: email,
	}
	for _, msg := range errs {
		data.Flashes = append(data.Flashes, domain.Flash{Level: domain.FlashError, Message: msg})
	}
	return c.Render(status, PageAdminLogin, data)
}

// queryInt returns the integer query parameter, or 0 when absent or malformed.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

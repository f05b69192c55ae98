package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/api/metrics"
	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

// UserListPath is where a successful registration redirects to.
const UserListPath = "/admin/users/"

// UserHandler serves the user creation form.
type UserHandler struct {
	registration ports.RegistrationService
	flashes      *Flashes
	log          zerolog.Logger
}

func NewUserHandler(registration ports.RegistrationService, flashes *Flashes, log zerolog.Logger) *UserHandler {
	return &UserHandler{registration: registration, flashes: flashes, log: log}
}

// --- Request / view types ---

type createUserRequest struct {
	Email     string `form:"email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Password  string `form:"password"`
	Role      string `form:"role"`
}

type roleOption struct {
	Value    string
	Label    string
	Selected bool
}

type createUserPage struct {
	page
	Form  ports.RegistrationInput
	Roles []roleOption
}

// ShowCreateForm renders an empty creation form.
//
// @Summary      User creation form
// @Tags         users
// @Produce      html
// @Success      200
// @Router       /users/create/ [get]
func (h *UserHandler) ShowCreateForm(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, ports.RegistrationInput{Role: string(domain.RoleUser)}, nil)
}

// CreateUser handles a form submission. Success stores a flash and
// redirects to the user listing; any failure re-renders the form with one
// message per failed rule and the submitted values, except the password.
//
// @Summary      Create a user
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email       formData  string  true   "Email address"
// @Param        first_name  formData  string  true   "First name"
// @Param        last_name   formData  string  true   "Last name"
// @Param        password    formData  string  true   "Password"
// @Param        role        formData  string  false  "Role (user or admin)"
// @Success      303
// @Failure      400
// @Failure      409
// @Failure      422
// @Failure      500
// @Router       /users/create/ [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return h.renderForm(c, http.StatusBadRequest, ports.RegistrationInput{Role: string(domain.RoleUser)},
			[]string{"The form submission could not be read."})
	}

	res := h.registration.Register(c.Request().Context(), ports.RegistrationInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      req.Role,
	})
	recordOutcome(res)

	if res.Outcome == ports.OutcomeCreated {
		h.log.Info().Str("user_id", res.User.ID).Str("role", string(res.User.Role)).Msg("user created")
		h.flashes.Add(c, domain.FlashSuccess,
			fmt.Sprintf("User %s %s created successfully!", res.User.FirstName, res.User.LastName))
		return c.Redirect(http.StatusSeeOther, UserListPath)
	}

	status := http.StatusUnprocessableEntity
	switch res.Outcome {
	case ports.OutcomeConflict:
		status = http.StatusConflict
	case ports.OutcomeFailed:
		status = http.StatusInternalServerError
	}
	return h.renderForm(c, status, res.Form, res.Errors.Messages())
}

func (h *UserHandler) renderForm(c echo.Context, status int, form ports.RegistrationInput, errs []string) error {
	data := createUserPage{
		page:  page{Title: "Create user", Flashes: h.flashes.Consume(c)},
		Form:  form,
		Roles: roleOptions(domain.Role(form.Role)),
	}
	for _, msg := range errs {
		data.Flashes = append(data.Flashes, domain.Flash{Level: domain.FlashError, Message: msg})
	}
	return c.Render(status, PageCreateUser, data)
}

func roleOptions(selected domain.Role) []roleOption {
	if !selected.Valid() {
		selected = domain.RoleUser
	}
	opts := make([]roleOption, 0, 2)
	for _, r := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		opts = append(opts, roleOption{Value: string(r), Label: r.Label(), Selected: r == selected})
	}
	return opts
}

func recordOutcome(res *ports.RegistrationResult) {
	metrics.RegistrationsTotal.WithLabelValues(string(res.Outcome)).Inc()
	if res.Outcome != ports.OutcomeInvalid {
		return
	}
	for _, fe := range res.Errors.Errors {
		metrics.ValidationErrorsTotal.WithLabelValues(fe.Field, fe.Code).Inc()
	}
}

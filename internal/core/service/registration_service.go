package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

const duplicateEmailMessage = "A user with this email already exists."

type registrationService struct {
	users     *UserManager
	repo      ports.UserRepository
	validator *FormValidator
	log       zerolog.Logger
}

// NewRegistrationService returns a RegistrationService that creates users
// through the given manager.
func NewRegistrationService(
	users *UserManager,
	repo ports.UserRepository,
	validator *FormValidator,
	log zerolog.Logger,
) ports.RegistrationService {
	if validator == nil {
		validator = NewFormValidator(nil)
	}
	return &registrationService{
		users:     users,
		repo:      repo,
		validator: validator,
		log:       log,
	}
}

// Register sanitizes, validates and persists one submission. It never
// returns an error; every failure is reported through the result.
func (s *registrationService) Register(ctx context.Context, in ports.RegistrationInput) *ports.RegistrationResult {
	// 1. Sanitize and coerce the role.
	form := SanitizeInput(in)
	res := &ports.RegistrationResult{Form: form}
	res.Form.Password = ""

	// 2. Validate, collecting every failure.
	res.Errors = s.validator.Validate(form)
	if !res.Errors.Valid() {
		res.Outcome = ports.OutcomeInvalid
		s.log.Debug().Int("errors", len(res.Errors.Errors)).Msg("registration rejected by validation")
		return res
	}

	email := NormalizeEmail(form.Email)

	// 3. Uniqueness pre-check. The storage constraint is the real guard; this
	// only saves a hash on the common path.
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return s.failed(res, err)
	}
	if exists {
		return s.conflict(res)
	}

	// 4. Create.
	user, err := s.users.CreateUser(ctx, email, form.Password, UserFields{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Role:      domain.Role(form.Role),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return s.conflict(res)
		}
		return s.failed(res, err)
	}

	res.Outcome = ports.OutcomeCreated
	res.User = user
	return res
}

func (s *registrationService) conflict(res *ports.RegistrationResult) *ports.RegistrationResult {
	res.Outcome = ports.OutcomeConflict
	res.Errors.Add("email", CodeDuplicate, duplicateEmailMessage)
	return res
}

func (s *registrationService) failed(res *ports.RegistrationResult, err error) *ports.RegistrationResult {
	s.log.Error().Err(err).Msg("registration failed")
	res.Outcome = ports.OutcomeFailed
	res.Errors.Add("", CodeInternal, "Error creating user: "+err.Error())
	return res
}

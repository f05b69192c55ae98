package ports

import (
	"context"

	"github.com/firstapp/accounts/internal/core/domain"
)

// RegistrationInput carries the raw, untrusted form values.
type RegistrationInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// Outcome classifies how a registration attempt ended.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeConflict Outcome = "conflict"
	OutcomeFailed   Outcome = "failed"
)

// RegistrationResult is returned for every attempt. Form holds the sanitized
// values with the password cleared; User is set only on OutcomeCreated.
type RegistrationResult struct {
	Outcome Outcome
	User    *domain.User
	Form    RegistrationInput
	Errors  ValidationResult
}

// RegistrationService runs the sanitize → validate → uniqueness → create pipeline.
type RegistrationService interface {
	Register(ctx context.Context, in RegistrationInput) *RegistrationResult
}

package service

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/firstapp/accounts/internal/core/ports"
)

const (
	NameMinLen     = 2
	NameMaxLen     = 30
	PasswordMinLen = 8
	PasswordMaxLen = 128
)

// Error codes carried by ports.FieldError.
const (
	CodeRequired     = "required"
	CodeInvalidEmail = "invalid_email"
	CodeLength       = "length"
	CodeCharset      = "charset"
	CodeUppercase    = "uppercase"
	CodeLowercase    = "lowercase"
	CodeDigit        = "digit"
	CodeDuplicate    = "duplicate"
	CodeInternal     = "internal"
)

var personNamePattern = regexp.MustCompile(`^[a-zA-Z\s\-.]+$`)

// NewValidate returns a go-playground validator with the "personname" tag
// registered alongside the built-in ones.
func NewValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register personname validation: %v", err))
	}
	return v
}

// FormValidator checks a sanitized registration submission and reports every
// rule that fails rather than stopping at the first one.
type FormValidator struct {
	v *validator.Validate
}

func NewFormValidator(v *validator.Validate) *FormValidator {
	if v == nil {
		v = NewValidate()
	}
	return &FormValidator{v: v}
}

func (f *FormValidator) Validate(in ports.RegistrationInput) ports.ValidationResult {
	res := f.ValidateProfile(in.Email, in.FirstName, in.LastName)
	validatePassword(&res, in.Password)
	return res
}

// ValidateProfile applies the email and name rules only. Paths that do not
// go through the registration form, such as superuser creation, use it.
func (f *FormValidator) ValidateProfile(email, firstName, lastName string) ports.ValidationResult {
	var res ports.ValidationResult
	f.validateEmail(&res, email)
	f.validateName(&res, "first_name", "First name", firstName)
	f.validateName(&res, "last_name", "Last name", lastName)
	return res
}

func (f *FormValidator) validateEmail(res *ports.ValidationResult, email string) {
	if email == "" {
		res.Add("email", CodeRequired, "Email is required.")
		return
	}
	if err := f.v.Var(email, "email"); err != nil {
		res.Add("email", CodeInvalidEmail, "Enter a valid email address.")
	}
}

func (f *FormValidator) validateName(res *ports.ValidationResult, field, label, value string) {
	n := utf8.RuneCountInString(value)
	if n < NameMinLen || n > NameMaxLen {
		res.Add(field, CodeLength,
			fmt.Sprintf("%s must be between %d and %d characters.", label, NameMinLen, NameMaxLen))
	}
	if value == "" {
		return
	}
	if err := f.v.Var(value, "personname"); err != nil {
		res.Add(field, CodeCharset,
			label+" may only contain letters, spaces, hyphens, and periods.")
	}
}

// validatePassword checks length, then the uppercase, lowercase and digit
// classes in that order. The classes are ASCII only, like the name charset;
// other characters are allowed but never count toward a class.
func validatePassword(res *ports.ValidationResult, password string) {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLen || n > PasswordMaxLen {
		res.Add("password", CodeLength,
			fmt.Sprintf("Password must be between %d and %d characters.", PasswordMinLen, PasswordMaxLen))
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	if !upper {
		res.Add("password", CodeUppercase, "Password must contain at least one uppercase letter.")
	}
	if !lower {
		res.Add("password", CodeLowercase, "Password must contain at least one lowercase letter.")
	}
	if !digit {
		res.Add("password", CodeDigit, "Password must contain at least one digit.")
	}
}

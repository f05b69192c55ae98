package ports

import "strings"

// FieldError is a single failed rule. Code is stable for programmatic use,
// Message is shown to the user.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult accumulates every failed rule of a submission.
type ValidationResult struct {
	Errors []FieldError
}

func (r *ValidationResult) Add(field, code, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: message})
}

// Valid reports whether no rule failed.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns the user-facing messages in the order rules failed.
func (r ValidationResult) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// HasCode reports whether any error on field carries code.
func (r ValidationResult) HasCode(field, code string) bool {
	for _, e := range r.Errors {
		if e.Field == field && e.Code == code {
			return true
		}
	}
	return false
}


// InvalidInputError carries a failed ValidationResult through an error return.
type InvalidInputError struct {
	Result ValidationResult
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + strings.Join(e.Result.Messages(), " ")
}

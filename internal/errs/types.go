package errs

import "strings"

// FieldError describes a problem with a single request field.
//
//	{ "field": "town", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the client-facing error type.
//
// Message is serialized under "error" so every error body has the
// {"error": "..."} shape clients of the businesses API expect. Code is a stable
// machine-readable identifier (e.g. "INVALID_ID"), Status mirrors the HTTP status.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"status"`

	// Override marks messages that are safe to show verbatim to end users.
	Override bool `json:"override"`

	// Errors holds per-field validation failures, if any.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error returns the client message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and Status are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e carrying a different message.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores turns "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

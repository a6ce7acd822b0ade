package errs

import (
	"net/http"
)

// Codes used by the businesses API on top of the status-derived defaults.
const (
	CodeInvalidID       = "INVALID_ID"
	CodeMissingFormData = "MISSING_FORM_DATA"
)

// Messages shared by handlers and services.
const (
	MsgInvalidBusinessID = "Invalid business ID"
	MsgInvalidReviewID   = "Invalid review ID"
	MsgMissingFormData   = "Missing form data"
	MsgStoreUnavailable  = "Store unavailable"
)

// NewBadRequestError creates a 400 HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors carries
// field-level validation failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewServiceUnavailableError creates a 503 HTTPError used when the document
// store cannot be reached.
func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusServiceUnavailable)),
		Message: message,
		Status:  http.StatusServiceUnavailable,
	}
}

// NewInternalServerError creates a generic 500. The message is always the
// status text so internal details never reach the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// InvalidBusinessID is returned for malformed business identifiers.
func InvalidBusinessID() *HTTPError {
	code := CodeInvalidID
	return NewBadRequestError(MsgInvalidBusinessID, true, &code, nil)
}

// InvalidReviewID is returned for malformed review identifiers.
func InvalidReviewID() *HTTPError {
	code := CodeInvalidID
	return NewBadRequestError(MsgInvalidReviewID, true, &code, nil)
}

// BusinessNotFound is returned when a well-formed business id matches nothing.
func BusinessNotFound() *HTTPError {
	return NewNotFoundError(MsgInvalidBusinessID, true, nil)
}

// ReviewNotFound is returned when no review matches the (business, review) pair.
func ReviewNotFound() *HTTPError {
	return NewNotFoundError(MsgInvalidReviewID, true, nil)
}

// MissingFormData is returned when required form fields are absent.
func MissingFormData(fieldErrors []FieldError) *HTTPError {
	code := CodeMissingFormData
	return NewBadRequestError(MsgMissingFormData, true, &code, fieldErrors)
}

// ValidationError converts an arbitrary validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}

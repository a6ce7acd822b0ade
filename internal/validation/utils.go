package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/bizreviews/internal/errs"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field failure that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so Validate can return it.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = validator.New()

// Struct runs the validator tags of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds path params, query params (GET/DELETE) and the body
// into payload, then validates it.
//
// A failed "required" rule yields the "Missing form data" error; any other
// rule yields a generic 400 with field errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(c, payload, err)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	return nil
}

// bindError hides binder internals from the client. Values that do not fit
// a numeric field become per-field "must be an integer" errors.
func bindError(c echo.Context, payload any, err error) *errs.HTTPError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: strings.ToLower(typeErr.Field), Error: "must be an integer"},
		})
	}

	if fieldErrors := nonIntegerFields(c, payload); len(fieldErrors) > 0 {
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
		return errs.NewBadRequestError("Unsupported content type", false, nil, nil)
	}
	return errs.NewBadRequestError("Malformed request payload", false, nil, nil)
}

// nonIntegerFields lists the int fields of payload whose form or query value
// does not parse as an integer.
func nonIntegerFields(c echo.Context, payload any) []errs.FieldError {
	v := reflect.ValueOf(payload)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	t := v.Elem().Type()

	var fieldErrors []errs.FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch f.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		default:
			continue
		}

		var name, raw string
		if name = f.Tag.Get("form"); name != "" {
			raw = c.FormValue(name)
		} else if name = f.Tag.Get("query"); name != "" {
			raw = c.QueryParam(name)
		} else {
			continue
		}

		if raw == "" {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: name, Error: "must be an integer"})
		}
	}
	return fieldErrors
}

func validationError(err error) *errs.HTTPError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fieldErrors, missing := extractFieldErrors(validationErrors)
		if missing {
			return errs.MissingFormData(fieldErrors)
		}
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
	}

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		fieldErrors := make([]errs.FieldError, 0, len(customErrors))
		for _, e := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
	}

	return errs.ValidationError(err)
}

// extractFieldErrors converts validator errors into client messages and
// reports whether any of them is a missing required field.
func extractFieldErrors(validationErrors validator.ValidationErrors) ([]errs.FieldError, bool) {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	missing := false

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			missing = true
			msg = "is required"
		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}
		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())
		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
	}

	return fieldErrors, missing
}

// objectIDRegex matches the 24 hex character form of a document identifier.
var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID reports whether s is a well-formed document identifier.
func IsValidObjectID(s string) bool {
	return objectIDRegex.MatchString(s)
}

// ParseObjectID converts s to an ObjectID. Malformed input never reaches the
// driver's converter.
func ParseObjectID(s string) (primitive.ObjectID, bool) {
	if !IsValidObjectID(s) {
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

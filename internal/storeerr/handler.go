package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/bizreviews/internal/errs"
)

// HandleError converts err into an application error.
//
//   - *errs.HTTPError passes through unchanged
//   - unreachable or timed out store -> 503 "Store unavailable"
//   - no documents -> 404 "<Entity> not found"
//   - duplicate key -> 400 "A <Entity> with this identifier already exists"
//   - anything else -> 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	entity := "record"
	var serr *Error
	if errors.As(err, &serr) && serr.Entity != "" {
		entity = serr.Entity
	}

	switch ErrCode(err) {
	case Unavailable, Timeout:
		return errs.NewServiceUnavailableError(errs.MsgStoreUnavailable)
	case NotFound:
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", humanizeText(entity)), true, nil)
	case DuplicateKey:
		code := strings.ToUpper(singular(entity)) + "_ALREADY_EXISTS"
		return errs.NewBadRequestError(
			fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(humanizeText(singular(entity)))),
			true, &code, nil)
	default:
		return errs.NewInternalServerError()
	}
}

// singular turns "reviews" into "review"; "business" is left alone.
func singular(s string) string {
	if strings.HasSuffix(s, "s") && len(s) > 1 && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}

// humanizeText converts snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

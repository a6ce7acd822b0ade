// Package storeerr classifies document store failures and converts them into
// client-facing errors.
//
// Driver errors are opaque to handlers; repositories wrap them with Wrap so
// the entity and operation travel with the error, and the global error
// handler turns them into an errs.HTTPError through HandleError.
package storeerr

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Code is the category of a store failure.
type Code int

const (
	Other Code = iota
	NotFound
	DuplicateKey
	Unavailable
	Timeout
)

func (c Code) String() string {
	switch c {
	case NotFound:
		return "not_found"
	case DuplicateKey:
		return "duplicate_key"
	case Unavailable:
		return "unavailable"
	case Timeout:
		return "timeout"
	default:
		return "other"
	}
}

// Error is a classified store failure.
type Error struct {
	Code   Code
	Entity string
	Op     string
	err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Entity, e.Op, e.Code, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Wrap classifies err and records the entity and operation it came from.
// The returned error carries a stack trace. Wrap returns nil for a nil err.
func Wrap(err error, entity, op string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithStack(&Error{
		Code:   Classify(err),
		Entity: entity,
		Op:     op,
		err:    err,
	})
}

// ErrCode returns the Code of the first *Error in err's chain, classifying
// err directly when there is none.
func ErrCode(err error) Code {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code
	}
	return Classify(err)
}

// Classify maps a raw driver error to a Code.
func Classify(err error) Code {
	switch {
	case err == nil:
		return Other
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case errors.Is(err, mongo.ErrClientDisconnected), mongo.IsNetworkError(err):
		return Unavailable
	// Server selection timeouts land here as well.
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return Timeout
	default:
		return Other
	}
}

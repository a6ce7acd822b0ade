// Package validation binds request payloads, validates them with
// go-playground/validator and translates failures into errs.HTTPError values.
// It also holds the identifier checks that guard the document store.
package validation

// Package pagination turns page-number/page-size query parameters into a
// skip/limit window.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when pn is absent.
	DefaultPage = 1

	// DefaultPageSize is used when ps is absent and no other default is configured.
	DefaultPageSize = 10
)

// Window is the slice of an ordered result set to return.
type Window struct {
	Page  int
	Size  int
	Skip  int64
	Limit int64
}

// Error reports a query parameter that is not a positive integer.
type Error struct {
	Param string
	Value string
}

func (e *Error) Error() string {
	return e.Param + " must be a positive integer, got " + strconv.Quote(e.Value)
}

// Options bounds the page size.
type Options struct {
	DefaultSize int
	MaxSize     int
}

// Parse reads pn (page number) and ps (page size). Empty values fall back to
// the defaults; anything else must be a positive integer. The page size is
// clamped to opts.MaxSize when set.
func Parse(pn, ps string, opts Options) (Window, error) {
	page, err := positiveInt("pn", pn, DefaultPage)
	if err != nil {
		return Window{}, err
	}

	defaultSize := opts.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	size, err := positiveInt("ps", ps, defaultSize)
	if err != nil {
		return Window{}, err
	}

	if opts.MaxSize > 0 && size > opts.MaxSize {
		size = opts.MaxSize
	}

	return New(page, size), nil
}

// New builds the window for a page and size that are already known to be
// positive. Skip saturates at math.MaxInt64, so a page far past the end is
// still an empty page rather than a negative offset.
func New(page, size int) Window {
	skip := int64(math.MaxInt64)
	if int64(page-1) <= math.MaxInt64/int64(size) {
		skip = int64(size) * int64(page-1)
	}

	return Window{
		Page:  page,
		Size:  size,
		Skip:  skip,
		Limit: int64(size),
	}
}

func positiveInt(param, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &Error{Param: param, Value: raw}
	}
	return n, nil
}

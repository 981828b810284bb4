package listing

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("listing not found")
	ErrUnknownBucket = errors.New("unknown price bucket")
	ErrUnknownSort   = errors.New("unknown sort order")
)

// FetchError is returned when a page could not be fetched: the request
// failed or the remote answered with a non-success status.
type FetchError struct {
	Kind       string
	Page       int
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError wraps err in a FetchError unless it already is one.
func AsFetchError(kind string, page int, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{
		Kind:    kind,
		Page:    page,
		Message: fmt.Sprintf("Failed to fetch %s", kind),
		Err:     err,
	}
}

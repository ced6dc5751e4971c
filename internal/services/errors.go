package services

import "errors"

var (
	// ErrFetchFailed matches every read failure returned by QueryService.
	ErrFetchFailed     = errors.New("failed to fetch")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidPage     = errors.New("page must be 1 or greater")
	// ErrPersistence is returned when a write reached the store and failed.
	ErrPersistence = errors.New("persistence failure")
)

// FetchError is a read failure. Its message names only what was being
// fetched; the store error is kept for logging and errors.Is/As.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string { return "failed to fetch " + e.What }

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

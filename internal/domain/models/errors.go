package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the currency was never populated in the store.
	ErrNotFound = errors.New("quote series not found")

	// ErrMissingRate means a conversion referenced a currency with no stored rate.
	ErrMissingRate = errors.New("missing rate")

	// ErrInvalidInput marks caller contract violations (bad code, non-positive
	// sell price, non-positive forecast horizon).
	ErrInvalidInput = errors.New("invalid input")
)

// FetchError is an unrecoverable per-currency retrieval or parse failure.
// It is caught at the per-currency boundary and downgraded to an empty
// series, so a multi-currency refresh completes even when one source
// call fails.
type FetchError struct {
	Currency Currency
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Currency, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a FetchError for the given currency.
func NewFetchError(c Currency, err error) *FetchError {
	return &FetchError{Currency: c, Err: err}
}

/*
errors.go - Centralized error types for the restaurant engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  The CLI and HTTP layers map these to exit codes and status codes.

ERROR CATEGORIES:
  1. Validation errors - malformed records or period bounds
  2. Storage errors    - persistence failures (I/O, constraints)
  3. Configuration     - missing or malformed configuration options

USAGE:
  if errors.Is(err, generic.ErrValidation) {
      // caller supplied bad input, nothing was persisted
  }

  var verr *generic.ValidationError
  if errors.As(err, &verr) {
      fmt.Println(verr.Field)
  }

SEE ALSO:
  - validate.go: Produces ValidationError
  - store/sqlite/sqlite.go: Produces StorageError
  - config/config.go: Produces ConfigurationError
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the kind behind every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrStorage is the kind behind every StorageError.
	ErrStorage = errors.New("storage failure")

	// ErrConfiguration is the kind behind every ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrRecordNotFound is returned by lookups for an unknown id.
	ErrRecordNotFound = errors.New("record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a rejected field. Nothing is persisted when it is returned.
type ValidationError struct {
	Field   string
	Message string
	Err     error // optional more specific cause, e.g. ErrInvalidPeriod
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError wraps a failure from the underlying database.
type StorageError struct {
	Op  string // e.g. "insert sale", "query shifts"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }

// ConfigurationError reports a missing or malformed configuration option.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// NewStorageError wraps err, passing through nil and errors that already
// carry a kind.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrStorage) || errors.Is(err, ErrRecordNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

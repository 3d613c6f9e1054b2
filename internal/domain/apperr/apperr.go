// Package apperr declares the error kinds shared by the lifecycle
// services, repositories, and HTTP handlers. Callers classify failures
// with errors.Is; wrapping with %w preserves the kind across layers.
package apperr

import "errors"

var (
	// ErrNotFound: no record matches the given key or id.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict: a record with the same natural key already exists.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials: password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid account email or password")

	// ErrValidation: caller input does not match the resource schema.
	ErrValidation = errors.New("validation failure")

	// ErrDataIntegrity: the store returned a shape or cardinality that
	// contradicts an invariant (duplicate unique keys, corrupt rows).
	// Never retried; treated as an operational incident.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrPersistence: a write statement failed.
	ErrPersistence = errors.New("persistence failure")
)

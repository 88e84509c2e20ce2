package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures reported by the backing store.
type ErrorKind string

const (
	// KindNotFound means a single-row lookup matched no row.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindUniqueViolation means a write hit a UNIQUE constraint. Constraint
	// names the violated constraint.
	KindUniqueViolation ErrorKind = "UNIQUE_VIOLATION"

	// KindOther covers everything else; Message carries the backend text.
	KindOther ErrorKind = "OTHER"
)

// Constraint names enforced by the backing store.
const (
	ConstraintStoreOwner   = "stores_owner_id_unique"
	ConstraintStoreSlug    = "stores_slug_key"
	ConstraintProfileID    = "profiles_pkey"
	ConstraintProductStore = "products_pkey"
)

// BackendError is the tagged error returned by the backing store.
// Callers branch on Kind rather than matching message text.
type BackendError struct {
	Kind       ErrorKind
	Constraint string
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Constraint, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error.
func NotFound(what string) *BackendError {
	return &BackendError{Kind: KindNotFound, Message: what + " not found"}
}

// UniqueViolation builds a KindUniqueViolation error for the named constraint.
func UniqueViolation(constraint string, err error) *BackendError {
	msg := "duplicate key value violates unique constraint " + constraint
	return &BackendError{Kind: KindUniqueViolation, Constraint: constraint, Message: msg, Err: err}
}

// Other wraps an unclassified backend failure.
func Other(err error) *BackendError {
	return &BackendError{Kind: KindOther, Message: err.Error(), Err: err}
}

// IsNotFound reports whether err is a KindNotFound backend error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind == KindNotFound
	}
	return false
}

// UniqueConstraint returns the violated constraint name if err is a
// KindUniqueViolation backend error.
func UniqueConstraint(err error) (string, bool) {
	var be *BackendError
	if errors.As(err, &be) && be.Kind == KindUniqueViolation {
		return be.Constraint, true
	}
	return "", false
}

// Message returns the backend's message for err, or err.Error() for
// errors that did not come from the backend.
func Message(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

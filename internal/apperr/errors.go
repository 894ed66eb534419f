// Package apperr holds the domain error taxonomy shared by all resource
// services and the translation from storage-engine failures onto it.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is a stable, transport-independent failure classification. Anything
// outside the set below is unclassified and surfaces as a server error.
type Kind int

const (
	KindMissingOrInvalidRole Kind = iota + 1
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
)

// Error carries a kind plus a human-readable message. Messages never reveal
// which part of an ownership chain failed.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func MissingOrInvalidRole(msg string) *Error {
	return &Error{Kind: KindMissingOrInvalidRole, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// HTTPStatus maps the kind to its fixed transport status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindMissingOrInvalidRole, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Code is the machine-readable code used in the error envelope.
func (e *Error) Code() string {
	switch e.Kind {
	case KindMissingOrInvalidRole:
		return "MISSING_OR_INVALID_ROLE"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindValidation:
		return "VALIDATION_ERROR"
	}
	return "SERVER_ERROR"
}

// As unwraps err into a domain error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindNotFound
}

func IsConflict(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindConflict
}

// Postgres SQLSTATE codes the translator recognizes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Translate maps storage constraint failures onto the domain taxonomy:
// unique violations become Conflict, vanished rows (no-rows results and
// foreign-key failures from check-then-create races) become NotFound.
// Anything else is returned unchanged so unexpected failures keep surfacing
// as server errors instead of being masked.
func Translate(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return Conflict(conflictMsg)
		case foreignKeyViolation:
			return NotFound(notFoundMsg)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(notFoundMsg)
	}
	return err
}

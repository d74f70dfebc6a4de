package service

import (
	"errors"
	"fmt"

	"github.com/chatcore/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Error carries a user-facing message; errors.Is matches it against its Kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func denied(msg string) error {
	return &Error{Kind: ErrPermissionDenied, Msg: msg}
}

func notFound(what string) error {
	return &Error{Kind: ErrNotFound, Msg: what + " not found"}
}

func invalidOp(msg string) error {
	return &Error{Kind: ErrInvalidOperation, Msg: msg}
}

// storeErr maps repository errors to service errors, keeping the original for logs.
func storeErr(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(what)
	}
	return err
}

// checkID rejects ids that can never exist so they surface as NotFound rather than a driver error.
func checkID(what, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(what)
	}
	return nil
}

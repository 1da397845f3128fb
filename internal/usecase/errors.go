package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound marks a lookup for a resource that does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation marks input that passed structural validation but fails a
	// business rule.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// responses do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken marks a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUpstream marks a payment provider failure.
	ErrUpstream = errors.New("payment provider unavailable")
)

// ConflictError reports a hold attempt that lost to existing reservations.
// It names every seat that blocked the batch.
type ConflictError struct {
	SeatIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("seats unavailable: %s", strings.Join(ids, ", "))
}

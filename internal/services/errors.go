package services

import (
	"errors"
	"fmt"
)

// Entry lifecycle errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyEntered   = errors.New("user has already entered this contest")
	ErrAlreadySettled   = errors.New("qualification has already been submitted for this entry")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrPaymentFailed    = errors.New("payment failed")
)

// Catalogue and checkout errors
var (
	ErrContestNotFound  = errors.New("contest not found")
	ErrContestClosed    = errors.New("contest is not accepting entries")
	ErrContestFull      = errors.New("contest has reached its maximum number of entries")
	ErrInvalidContest   = errors.New("invalid contest")
	ErrInvalidFilter    = errors.New("invalid contest filter")
	ErrQuestionNotFound = errors.New("qualification question not found")
	ErrQuestionExists   = errors.New("contest already has a qualification question")
	ErrInvalidQuestion  = errors.New("invalid qualification question")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentProcessed = errors.New("payment has already been processed")
)

// Account errors
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// CollaboratorError reports a failure of a store or provider the services depend on.
// The cause is passed through unchanged and is never retried here.
type CollaboratorError struct {
	Op    string
	Cause error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}

func collaboratorError(op string, cause error) error {
	return &CollaboratorError{Op: op, Cause: cause}
}

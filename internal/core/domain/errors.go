package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrLastLeader         = errors.New("the last remaining leader cannot be removed or demoted")
)

// Event errors
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrScheduleConflict = errors.New("an event is already scheduled at this date and time")
)

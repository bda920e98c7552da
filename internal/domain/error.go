package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid execution context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrUnauthorized       = errors.New("unauthorized")

	// Activation errors
	ErrInvalidActivationCode = errors.New("invalid activation code")
	ErrCodeAlreadyUsed       = errors.New("activation code already used")
	ErrInvalidDuration       = errors.New("invalid subscription duration")
	ErrInvalidCount          = errors.New("invalid code count")
	ErrRateLimited           = errors.New("too many activation attempts")
	ErrLockBusy              = errors.New("activation already in progress")
)

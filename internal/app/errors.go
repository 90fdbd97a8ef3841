package app

import "errors"

var (
	// ErrInvalidInput marks a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProfileNotFound means onboarding has not happened yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidBackup marks an import payload that is not a usable backup.
	ErrInvalidBackup = errors.New("invalid backup")
)

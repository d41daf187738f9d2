package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")

	ErrForbidden     = errors.New("access forbidden")
	ErrAlreadyMember = errors.New("user already assigned to this project")
	ErrUserExists    = errors.New("user already exists")

	// ErrInvalidInput is wrapped with a detail message, e.g.
	// fmt.Errorf("%w: limit must be positive", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
)

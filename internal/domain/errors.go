package domain

import "errors"

var (
	// ErrUserExists is returned when registering an email that is already
	// taken, whether caught by the pre-check or by the unique constraint.
	ErrUserExists = errors.New("user with this email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTaskNotFound conflates "no such task" with "task belongs to
	// another user" so non-owners learn nothing about existence.
	ErrTaskNotFound = errors.New("task not found or unauthorized")

	// ErrUserNotFound is returned by the user repository on a lookup miss.
	ErrUserNotFound = errors.New("user not found")
)

package auth

import "errors"

var (
	// ErrMissingFields is returned when name, email or password is absent
	ErrMissingFields = errors.New("name, email and password are required")

	// ErrDuplicateEmail is returned when an account with the email exists
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is returned when email or password does not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user does not resolve
	ErrUserNotFound = errors.New("user not found")
)

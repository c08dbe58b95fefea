package user

import "errors"

var (
	// ErrEmailTaken is returned by Register when the email is already registered.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when the authenticated user no longer exists.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is returned for malformed requests.
	ErrInvalidInput = errors.New("invalid input")
)

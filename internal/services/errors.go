package services

import "errors"

// Service errors. Handlers map these onto HTTP statuses; anything else
// surfaces as a 500 without internal detail.
var (
	ErrMissingFields = errors.New("missing required fields")

	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials deliberately covers both "no such email" and
	// "wrong password" so login failures don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrShortcutNameTaken = errors.New("shortcut name already exists")

	ErrNotFound = errors.New("not found")
)

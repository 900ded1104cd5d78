package database

import "errors"

var (
	// ErrNotAvailable: the car has a conflicting non-cancelled rental
	// for the requested interval.
	ErrNotAvailable = errors.New("car is not available for the selected dates")

	// ErrNotFound: the referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail: the users.email unique constraint fired.
	ErrDuplicateEmail = errors.New("email is already registered")
)

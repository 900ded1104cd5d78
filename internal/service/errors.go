package service

import "errors"

var (
	// ErrForbidden means the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidStatus means an unknown lifecycle status was requested.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrAlreadyFinished means the rental is completed or cancelled and
	// cannot change anymore.
	ErrAlreadyFinished = errors.New("rental already finished")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so the response does not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive means the account exists but is blocked.
	ErrUserInactive = errors.New("user is inactive")
)

package client

import "errors"

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrAlreadyExists    = errors.New("account already exists")
	ErrReauthRequired   = errors.New("requires recent login")
	ErrNotAuthenticated = errors.New("not logged in")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
)

package service

import "errors"

// Sentinel errors for the domain. The handler layer maps these onto HTTP
// statuses; anything else is treated as an internal error and the caller
// gets a generic message.
var (
	ErrEmailTaken          = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrContactEmailTaken   = errors.New("contact with this email already exists")
)

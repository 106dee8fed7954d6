package models

import "errors"

// Sentinel domain errors. Repositories and services wrap these with %w;
// handlers translate them to HTTP statuses with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("an application with this email already exists")
	ErrEmailTaken           = errors.New("a user with this email already exists")
	ErrInvalidToken         = errors.New("invalid or already used token")
	ErrInviteInvalid        = errors.New("invite token is invalid or expired")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrForbidden            = errors.New("forbidden")
)

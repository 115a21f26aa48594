package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Journal errors.
	ErrConnection           = errors.New("database connection error")
	ErrNotActiveShift       = errors.New("only the active shift can be modified")
	ErrValidation           = errors.New("validation error")
	ErrPersistence          = errors.New("persistence error")
	ErrConfirmationRequired = errors.New("confirmation required")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

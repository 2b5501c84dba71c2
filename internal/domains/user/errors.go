package user

import "kiosk-backend/internal/shared/apperr"

// Error codes
const (
	ErrCodeUserNotFound       = "USR_001"
	ErrCodeEmailExists        = "USR_002"
	ErrCodeInvalidCredentials = "USR_003"
	ErrCodeInvalidInput       = "USR_004"
)

var (
	ErrUserNotFound       = apperr.NotFound(ErrCodeUserNotFound, "User not found")
	ErrEmailAlreadyExists = apperr.Conflict(ErrCodeEmailExists, "Email already registered")
	ErrInvalidCredentials = apperr.Unauthorized(ErrCodeInvalidCredentials, "Invalid email or password")
)

func NewInvalidInputError(err error) *apperr.Error {
	return apperr.Validation(ErrCodeInvalidInput, err.Error())
}

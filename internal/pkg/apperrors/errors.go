package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// User errors
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrUsernameAlreadyExists   = errors.New("username already exists")
	ErrUserHasActiveMentorship = NewConflictError("user has active mentorships and cannot be deleted")
)

// Mentorship errors
var (
	ErrMentorshipNotFound      = errors.New("mentorship not found")
	ErrInvalidMentorshipStatus = errors.New("invalid mentorship status")
	ErrSelfMentorship          = errors.New("mentor and mentee must be different users")
)

// Group errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrMemberNotFound     = errors.New("group member not found")
	ErrMemberAlreadyAdded = NewConflictError("user is already a member of this group")
)

// Forum errors
var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrReplyNotFound  = errors.New("reply not found")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

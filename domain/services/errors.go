package services

import "errors"

// Request-scoped errors surfaced to the caller. Handlers map these to
// HTTP statuses with errors.Is.
var (
	// Validation
	ErrInvalidDescriptor = errors.New("face descriptor must have exactly 128 components")
	ErrInvalidOTP        = errors.New("invalid or expired OTP")
	ErrInvalidPhone      = errors.New("valid phone number is required")
	ErrRoleRequired      = errors.New("role is required for new users")
	ErrNoFilesUploaded   = errors.New("no photos uploaded")

	// Not found
	ErrEventNotFound = errors.New("event not found")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrGuestNotFound = errors.New("guest has not joined this event")

	// Authorization
	ErrNotEventOwner = errors.New("event does not belong to this photographer")
	ErrNotJoined     = errors.New("you have not joined this event")

	// Duplicate / conflict
	ErrEventCodeExhausted = errors.New("could not generate a unique event code")
)

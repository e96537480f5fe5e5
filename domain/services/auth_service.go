package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

// OTPResult is returned after requesting an OTP. DevOTP carries the code
// itself in development mode where no SMS is sent.
type OTPResult struct {
	ExpiresIn int    `json:"expiresIn"` // seconds
	DevOTP    string `json:"devOtp,omitempty"`
}

// AuthResult is returned after a successful OTP verification.
type AuthResult struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}

// UpdateProfileInput carries the editable profile fields. Nil pointers
// leave the current value untouched.
type UpdateProfileInput struct {
	Name       *string `json:"name"`
	ProfilePic *string `json:"profilePic"`
}

type AuthService interface {
	// SendOTP generates a one-time code for the phone number and hands
	// it to the SMS gateway. The code expires after 5 minutes.
	SendOTP(ctx context.Context, phone string) (*OTPResult, error)

	// VerifyOTP checks the code, creates the user on first login
	// (role required) and issues a JWT.
	VerifyOTP(ctx context.Context, phone, otp string, role models.UserRole, name string) (*AuthResult, error)

	// RefreshToken issues a new JWT for an authenticated user.
	RefreshToken(ctx context.Context, userID string) (string, error)

	// Profile returns the stored user record.
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// UpdateProfile applies partial changes to the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error)
}

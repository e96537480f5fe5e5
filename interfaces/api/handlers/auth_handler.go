package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type sendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// SendOTP issues a one-time code for the phone number
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequestResponse(c, "Phone number is required")
	}

	result, err := h.authService.SendOTP(c.UserContext(), req.Phone)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OTP sent", result)
}

// VerifyOTP validates the code and signs the user in
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequestResponse(c, "Phone and 6-digit OTP are required")
	}

	result, err := h.authService.VerifyOTP(c.UserContext(), req.Phone, req.OTP, models.UserRole(req.Role), req.Name)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Authenticated", result)
}

// Refresh issues a new token for the authenticated user
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	token, err := h.authService.RefreshToken(c.UserContext(), user.ID.String())
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Token refreshed", fiber.Map{"token": token})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	profile, err := h.authService.Profile(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", profile)
}

// UpdateMe applies partial profile changes for the authenticated user
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	profile, err := h.authService.UpdateProfile(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Profile updated", profile)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/interfaces/api/handlers"
	"github.com/Nihalturkar/Event-System-backend/interfaces/api/middleware"
	"github.com/Nihalturkar/Event-System-backend/pkg/config"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, rateLimit *config.RateLimitConfig) {
	auth := api.Group("/auth")

	// OTP endpoints are the obvious brute-force target, so they get
	// the stricter limiter.
	auth.Post("/otp/send", middleware.AuthRateLimiter(rateLimit), h.Auth.SendOTP)
	auth.Post("/otp/verify", middleware.AuthRateLimiter(rateLimit), h.Auth.VerifyOTP)

	auth.Post("/refresh", middleware.Protected(), h.Auth.Refresh)
	auth.Get("/me", middleware.Protected(), h.Auth.Me)
	auth.Put("/me", middleware.Protected(), h.Auth.UpdateMe)
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
)

// LoggerMiddleware logs every request with its status and duration
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.API("request", c.Method()+" "+c.Path(), map[string]interface{}{
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
			"ip":       c.IP(),
		})

		return err
	}
}

// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
	"github.com/ilmi-school/landing-analytics/app/dto"
)

// APIKeyMiddleware guards admin endpoints with a shared static key
type APIKeyMiddleware struct {
	key string
}

// NewAPIKeyMiddleware creates a new API key middleware
func NewAPIKeyMiddleware(key string) *APIKeyMiddleware {
	return &APIKeyMiddleware{key: key}
}

// Require validates the X-API-Key header against the configured key
func (m *APIKeyMiddleware) Require() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.key == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Admin API is disabled",
				Error:   dto.ErrorDetail{Code: "ADMIN_API_DISABLED"},
			})
		}

		provided := c.Get("X-API-Key")
		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "X-API-Key header is required",
				Error:   dto.ErrorDetail{Code: "MISSING_API_KEY"},
			})
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid API key",
				Error:   dto.ErrorDetail{Code: "INVALID_API_KEY"},
			})
		}

		return c.Next()
	}
}

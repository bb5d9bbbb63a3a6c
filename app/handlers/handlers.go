// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"
	businessflow "github.com/ilmi-school/landing-analytics/business_flow"
	"github.com/ilmi-school/landing-analytics/utils"
)

const ingestTimeout = 10 * time.Second

// decodeLenient unmarshals the request body into v, treating a malformed or
// empty body as an empty payload. Tracking calls are fire-and-forget; a
// broken body degrades every field to its default instead of rejecting the
// request.
func decodeLenient(c fiber.Ctx, v any) {
	body := c.Body()
	if len(body) == 0 {
		return
	}
	if err := json.Unmarshal(body, v); err != nil {
		// Invalid JSON: keep v zero-valued, same as an empty payload.
		return
	}
}

// clientMetadata captures network-derived request information. The IP checks
// the forwarded-for header first (first comma-separated entry, trimmed) and
// falls back to the direct connection address.
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	ip := utils.ClientIP(c.Get("X-Forwarded-For"), c.IP())
	metadata := businessflow.NewClientMetadata(ip, c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))
	return metadata
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ingestTimeout)
}

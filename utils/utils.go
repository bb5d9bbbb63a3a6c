// Package utils provides utility functions for the application.
package utils

import "strings"

func ToPtr[T any](v T) *T {
	return &v
}

func IsTrue(b *bool) bool {
	return b != nil && *b
}

// ClientIP derives the requester address: first comma-separated entry of the
// forwarded-for header when present, trimmed, falling back to the direct
// connection address.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx >= 0 {
			forwardedFor = forwardedFor[:idx]
		}
		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}
	return remoteAddr
}

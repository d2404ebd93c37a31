package utils

import (
	"net/http"
	"strings"
)

// GetClientIP resolves the real client IP, honoring proxy headers.
func GetClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if strings.Contains(ip, ":") {
		parts := strings.Split(ip, ":")
		if len(parts) > 0 {
			return parts[0]
		}
	}
	return ip
}

// GetClientInfo returns the requester's client string.
func GetClientInfo(r *http.Request) string {
	return r.Header.Get("User-Agent")
}

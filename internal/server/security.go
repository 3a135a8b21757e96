package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig controls the headers added to every response.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
}

// DefaultSecurityConfig allows read-only cross-origin scrapes.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}
}

// SecurityMiddleware sets defensive response headers and, when enabled,
// CORS headers. OPTIONS preflight requests are answered directly.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}

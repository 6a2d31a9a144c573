package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	corsAllowedHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, MCP-Protocol-Version, MCP-Session-Id"
	corsAllowedMethods = "POST, GET, OPTIONS, PUT, PATCH, DELETE"
)

var defaultAllowedOrigins = []string{
	"https://gymtracker.app",
	"https://www.gymtracker.app",
	"http://localhost:8080",
	"http://localhost:5173",
}

// native clients send no Origin, they are recognized by user agent
var allowedUserAgentPrefixes = []string{
	"GymTracker/",
	"curl/",
	"test-agent",
}

// Cors allows the web client origins plus extraOrigins, the native app user agents and MCP clients.
// Allowed preflight requests are answered here and never reach the handlers.
func Cors(extraOrigins ...string) func(next http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(defaultAllowedOrigins)+len(extraOrigins))
	for _, o := range append(defaultAllowedOrigins, extraOrigins...) {
		allowedOrigins[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			// MCP clients (Cursor and others) often send no Origin
			isMCP := strings.HasPrefix(r.URL.Path, "/mcp")

			if !allowedOrigins[origin] && !hasAnyPrefix(r.Header.Get("User-Agent"), allowedUserAgentPrefixes) && !isMCP {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			allowOrigin := origin
			if allowOrigin == "" && isMCP {
				allowOrigin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

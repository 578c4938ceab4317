package middleware

import (
	"net/http"
	"strings"
)

// CORS provides allowlist-based CORS for the booking widget and the staff
// dashboard. Entries may be exact origins, "*" for any origin, or a
// "*.domain" suffix pattern so a widget embedded across salon subdomains
// needs a single entry.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny := false
	exact := map[string]struct{}{}
	var suffixes []string
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "":
		case origin == "*":
			allowAny = true
		case strings.HasPrefix(origin, "*."):
			suffixes = append(suffixes, origin[1:])
		default:
			exact[origin] = struct{}{}
		}
	}

	allowed := func(origin string) bool {
		if allowAny {
			return true
		}
		if _, ok := exact[origin]; ok {
			return true
		}
		for _, s := range suffixes {
			if strings.HasSuffix(origin, s) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && allowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Max-Age", "600")
			}

			// Preflight requests stop here.
			if r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

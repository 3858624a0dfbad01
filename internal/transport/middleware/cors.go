package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/concept-clarity/internal/config"
)

// CORS returns middleware for browser clients of the API.
//
// Simple requests from an allowed origin get Access-Control-Allow-Origin;
// others pass through without it. A preflight (OPTIONS with Origin and
// Access-Control-Request-Method) is answered here: 204 when both the origin
// and the requested method are allowed, 403 otherwise. Any other OPTIONS
// request reaches the router.
func CORS(cfg config.CORSConfig) Middleware {
	origins := splitList(cfg.AllowedOrigins)
	methods := make(map[string]struct{})
	for _, m := range splitList(cfg.AllowedMethods) {
		methods[strings.ToUpper(m)] = struct{}{}
	}
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Origin")

			allowed := isAllowedOrigin(origin, origins)
			reqMethod := r.Header.Get("Access-Control-Request-Method")

			if r.Method == http.MethodOptions && reqMethod != "" {
				if _, ok := methods[strings.ToUpper(reqMethod)]; !ok || !allowed {
					writeJSONError(w, http.StatusForbidden, "cors: request not allowed")
					return
				}
				setAllowOrigin(w, origin, cfg.AllowCredentials)
				w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowed {
				setAllowOrigin(w, origin, cfg.AllowCredentials)
				w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setAllowOrigin(w http.ResponseWriter, origin string, credentials bool) {
	w.Header().Set("Access-Control-Allow-Origin", origin)
	if credentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isAllowedOrigin(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

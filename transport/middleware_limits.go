package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/softglass/calculator-backend/cmd/config"
)

// TimeoutMiddleware bounds every store and network call made while serving
// a request. A non-positive d disables it.
func TimeoutMiddleware(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BodyLimitMiddleware caps request bodies; the send-order form carries
// base64 photos, so the limit is generous but finite.
func BodyLimitMiddleware(max int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if max <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// preflight answers OPTIONS with 200 and an empty body. Headers already set
// by the CORS middleware for browser preflights are kept.
func preflight(cfg config.CORSConfig, methods string) http.HandlerFunc {
	defaults := map[string]string{
		"Access-Control-Allow-Methods": methods,
		"Access-Control-Allow-Headers": "Content-Type, X-Auth-Token",
		"Access-Control-Max-Age":       strconv.Itoa(cfg.MaxAge),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if h.Get("Access-Control-Allow-Origin") == "" {
			if origin := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
			}
		}
		for k, v := range defaults {
			if h.Get(k) == "" {
				h.Set(k, v)
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}

// allowedOrigin returns "*" for a wildcard config, the request origin when it
// is listed, and "" otherwise.
func allowedOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

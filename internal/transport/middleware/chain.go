package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/concept-clarity/internal/config"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Chain(mw1, mw2)(handler) is mw1(mw2(handler)); mw1 runs first.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// StackConfig holds the deployment-specific parts of Stack.
type StackConfig struct {
	CORS config.CORSConfig
	// Limiter enables per-client limiting when set and RequestsPerMinute > 0.
	Limiter           *RateLimiter
	RequestsPerMinute int
	Burst             int
	MaxBodyBytes      int64
}

// Stack is the middleware every API route runs through, outermost first:
// RequestID, Logger, Recovery, CORS, rate limit, BodyLimit.
//
// The request ID is assigned before anything can fail, so recovered panics
// and rejected requests are logged and answered with it. Recovery sits
// inside Logger so a recovered 500 is still logged as a request. CORS
// preflights are answered before the rate limiter and never use a token.
func Stack(logger *slog.Logger, cfg StackConfig) Middleware {
	mws := []Middleware{
		RequestID(),
		Logger(logger),
		Recovery(logger),
		CORS(cfg.CORS),
	}
	if cfg.Limiter != nil && cfg.RequestsPerMinute > 0 {
		mws = append(mws, cfg.Limiter.Limit(cfg.RequestsPerMinute, cfg.Burst))
	}
	mws = append(mws, BodyLimit(cfg.MaxBodyBytes))
	return Chain(mws...)
}

package ward

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Middleware is the standard host-level middleware signature, compatible
// with the entire Go middleware ecosystem. It wraps whole handlers;
// request-scoped composition inside the pipeline uses Step instead.
type Middleware func(next http.Handler) http.Handler

// Recovery returns middleware that recovers from panics and responds
// with 500. Compiled ward handlers already recover their own pipeline;
// this protects raw handlers mounted alongside them.
func Recovery(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("stack", string(debug.Stack())).
						Msg("panic recovered")
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

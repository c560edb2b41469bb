package middleware

// The original work was derived from Goji's middleware, source:
// https://github.com/zenazn/goji/tree/master/web/middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	"github.com/metricsim/metricsim"
	"github.com/metricsim/metricsim/api"
)

// Recoverer is a middleware that recovers from panics, logs the panic and a
// backtrace, and returns a HTTP 500 (Internal Server Error) status if
// possible.
func Recoverer(logger metricsim.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log := logger.Clone()
					log.String("context", "http")
					log.Errorf("Panic: %+v\n%s", rvr, debug.Stack())

					render.Render(writer, request, api.ErrorInternalServer(fmt.Errorf("internal Server Error"))) //nolint
				}
			}()

			next.ServeHTTP(writer, request)
		}
		return http.HandlerFunc(fn)
	}
}

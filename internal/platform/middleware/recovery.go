package middleware

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/claimlens/claimlens/pkg/respond"
)

// Recovery converts a handler panic into the API's standard error envelope.
// Claim payloads arrive arbitrarily malformed, so a panic anywhere in the
// parse path must terminate the request, never the server.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				stack := make([]byte, 8<<10)
				n := runtime.Stack(stack, false)

				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Str("request_id", rid).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Interface("panic", r).
					Bytes("stack", stack[:n]).
					Msg("panic recovered")

				if !c.Response().Committed {
					err = respond.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
				}
			}()
			return next(c)
		}
	}
}

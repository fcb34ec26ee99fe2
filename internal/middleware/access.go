package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAccessLevel returns a middleware that enforces that the
// authenticated user holds one of the given access levels.  The
// accepted values correspond to the JWT "access_level" claim stored in
// the context by JWTAuth.  Requests with a missing or disallowed level
// are rejected with 403 Forbidden.
func RequireAccessLevel(levels ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(levels))
	for _, l := range levels {
		allowed[l] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			level, ok := c.Get("access_level").(string)
			if !ok || !allowed[level] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

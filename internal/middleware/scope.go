package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/auth"
)

// RequireScope enforces that the authenticated user's role grants the
// named scope. It assumes JWTAuth already stored the role in context;
// a missing role is treated as granting nothing.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if err := auth.Authorize(role, scope); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

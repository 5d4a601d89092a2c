package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-enricher/internal/handler"
)

// RequireRole lets the request through when its token carries one of roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value, ok := c.Get(ContextKeyUserRole).(string)
			if !ok || value == "" {
				return handler.Error(c, http.StatusForbidden, "missing role")
			}
			if !slices.Contains(roles, value) {
				return handler.Error(c, http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

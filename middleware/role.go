package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Site roles. "mitarbeiter" is the staff role used by the content editors.
const (
	RoleAdmin       = "admin"
	RoleMitarbeiter = "mitarbeiter"
	RoleCustomer    = "customer"
)

// RequireRole allows the request through only when the authenticated role is
// one of the listed roles. Must run after JWTMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}
	}
}

// RequireStaff is shorthand for the write-capability check: admins and staff
// may edit content, customers may not.
func RequireStaff() echo.MiddlewareFunc {
	return RequireRole(RoleAdmin, RoleMitarbeiter)
}

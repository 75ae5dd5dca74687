package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/policy"
)

type AdminMiddleware struct {
	policy *policy.AdminPolicy
}

func NewAdminMiddleware(adminPolicy *policy.AdminPolicy) *AdminMiddleware {
	return &AdminMiddleware{
		policy: adminPolicy,
	}
}

// RequireAdmin rejects requests whose authenticated email is not on the
// admin allow list. Must run after AuthMiddleware.Authenticate.
func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, ok := c.Get("email").(string)
		if !ok || email == "" {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}

		if !m.policy.IsAdmin(email) {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}

		return next(c)
	}
}

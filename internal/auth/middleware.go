package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
)

// adminContextKey is where LoadAdmin stores the authenticated admin.
const adminContextKey = "admin"

// LoadAdmin runs after the JWT middleware. It resolves the token's admin
// against the database so every request sees the current role and active
// flag, not the ones frozen into the token at login.
func LoadAdmin(admins repository.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			admin, err := admins.FindByID(c.Request().Context(), claims.AdminID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
			}
			if !admin.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is deactivated")
			}

			c.Set(adminContextKey, admin)
			return next(c)
		}
	}
}

// CurrentAdmin returns the admin attached by LoadAdmin.
func CurrentAdmin(c echo.Context) (*model.Admin, error) {
	admin, ok := c.Get(adminContextKey).(*model.Admin)
	if !ok || admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return admin, nil
}

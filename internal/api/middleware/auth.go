package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// userKey is the context key under which Auth stores the resolved user.
const userKey = "current_user"

// Auth verifies the bearer token and injects the resolved user into context.
// A token whose embedded user id no longer resolves is rejected here, so
// handlers never see a nil user.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
			}

			user, err := auth.Verify(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrMissingToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is invalid!")
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser extracts the user stored by Auth. The second return is false
// on routes where the middleware did not run.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userKey).(*domain.User)
	return user, ok && user != nil
}

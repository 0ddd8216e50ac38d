package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixflow/maintenance-system/internal/api/middleware"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// ctxActor extracts the authenticated user injected by the Auth middleware and
// converts it to the service-layer actor. Its absence means the route was
// wired without the middleware; fail closed.
func ctxActor(c echo.Context) (ports.Actor, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
	}
	return ports.ActorFrom(user), nil
}

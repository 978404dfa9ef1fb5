package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskgrid/task-tracker-api/internal/api/middleware"
	"github.com/taskgrid/task-tracker-api/internal/core/domain"
)

// ctxActor extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; a missing or mistyped value means
// the route was wired without auth and must not proceed.
func ctxActor(c echo.Context) (*domain.User, error) {
	actor, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return actor, nil
}

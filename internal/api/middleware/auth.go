package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskgrid/task-tracker-api/internal/core/ports"
	"github.com/taskgrid/task-tracker-api/internal/core/service"
)

// ContextUserKey is the echo context key under which Auth stores the actor.
const ContextUserKey = "user"

// Auth validates the bearer token and injects the authenticated user into the
// request context. Only access tokens pass; a refresh token presented here is
// rejected with 401. The subject id must still resolve to a stored user.
func Auth(tokens *service.TokenManager, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Decode(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if err := tokens.AssertAccessToken(claims.Kind); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token type")
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

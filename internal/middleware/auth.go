package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/welovit/lead-buddy-app/internal/session"
	"github.com/welovit/lead-buddy-app/pkg/logger"
	"github.com/welovit/lead-buddy-app/prometheus"
)

// UserIDKey is the echo context key the authenticated user id is
// stored under.
const UserIDKey = "user_id"

// SessionAuth resolves the request's session token to a user identity.
// Missing, unknown and expired tokens all surface as the same 401 so
// callers get no session-guessing signal.
func SessionAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			token := session.TokenFromRequest(c)
			if token == "" {
				log.Warn("Missing session token")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			userID, err := sessions.Resolve(token)
			if err != nil {
				if !errors.Is(err, session.ErrUnauthenticated) {
					log.Error("Session lookup failed", zap.Error(err))
					prometheus.RecordAuthError("db_error")
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
				}
				log.Warn("Invalid or expired session token")
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

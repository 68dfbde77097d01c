package middleware

import (
	"context"
	"strings"

	"loanhub-portal/internal/config"
	"loanhub-portal/internal/core/domain"
	"loanhub-portal/internal/core/services"
	"loanhub-portal/internal/pkg/jwt"
	"loanhub-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the signed session id
const SessionCookieName = "portal_session"

// Locals keys set by RequireSession
const (
	localSession   = "session"
	localSessionID = "sessionID"
)

// SessionRestorer restores a persisted session by id
type SessionRestorer interface {
	Restore(ctx context.Context, sessionID string) (*domain.Session, error)
}

// RequireSession is the admission gate for protected views. It re-evaluates
// on every request: no valid cookie, unknown session, expired or corrupt
// record all resolve to 401 + redirect to the login view. On success the
// session is stashed in locals for the handlers.
func RequireSession(sessions SessionRestorer, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cookieToken string

		// 1. Try to get the session cookie first
		cookieToken = c.Cookies(SessionCookieName)

		// 2. If not in cookie, try Authorization header
		if cookieToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				cookieToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if cookieToken == "" {
			return response.UnauthorizedRedirect(c, "Sign in required", services.ViewLogin)
		}

		// 4. Validate the cookie signature
		claims, err := jwt.ValidateSessionToken(cookieToken, cfg.Session.JWTSecret)
		if err != nil {
			return response.UnauthorizedRedirect(c, "Sign in required", services.ViewLogin)
		}

		// 5. Restore the persisted session; absence, expiry and corruption
		// all read as "not signed in"
		session, err := sessions.Restore(c.Context(), claims.SessionID)
		if err != nil {
			return response.UnauthorizedRedirect(c, "Sign in required", services.ViewLogin)
		}

		c.Locals(localSession, session)
		c.Locals(localSessionID, claims.SessionID)

		return c.Next()
	}
}

// AdminOnly admits only ADMIN sessions. Anyone authenticated but not an
// admin is pointed back to the user dashboard; admin content is never
// rendered for them, even transiently.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := c.Locals(localSession).(*domain.Session)
		if !ok {
			return response.UnauthorizedRedirect(c, "Sign in required", services.ViewLogin)
		}
		if !session.IsAdmin() {
			return response.ForbiddenRedirect(c, "Administrator access required", services.ViewDashboard)
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session stashed by RequireSession.
func SessionFromCtx(c *fiber.Ctx) (*domain.Session, bool) {
	session, ok := c.Locals(localSession).(*domain.Session)
	return session, ok
}

// SessionIDFromCtx returns the session id stashed by RequireSession.
func SessionIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(localSessionID).(string)
	return id
}

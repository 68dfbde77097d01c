package handlers

import (
	"strings"
	"time"

	"loanhub-portal/internal/adapters/http/middleware"
	"loanhub-portal/internal/config"
	"loanhub-portal/internal/core/domain"
	"loanhub-portal/internal/core/services"
	"loanhub-portal/internal/pkg/jwt"
	"loanhub-portal/internal/pkg/response"
	"loanhub-portal/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the login, register and logout views
type AuthHandler struct {
	sessions *services.SessionService
	cfg      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cfg:      cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// SessionView is the identity echoed to the UI. The backend bearer token
// stays server-side and is never part of it.
type SessionView struct {
	Email    string      `json:"email"`
	FullName string      `json:"fullName"`
	Role     domain.Role `json:"role"`
	IsAdmin  bool        `json:"isAdmin"`
}

func toSessionView(s *domain.Session) SessionView {
	return SessionView{
		Email:    s.Email,
		FullName: s.FullName,
		Role:     s.Role,
		IsAdmin:  s.IsAdmin(),
	}
}

// Login handles user login
// @Summary Sign in
// @Description Authenticate against the loan backend and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Local validation first; nothing reaches the backend on failure
	fields := map[string]string{}
	if msg := validate.Email(strings.TrimSpace(req.Email)); msg != "" {
		fields["email"] = msg
	}
	if msg := validate.Password(req.Password); msg != "" {
		fields["password"] = msg
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	result, err := h.sessions.Login(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return backendError(c, err)
	}

	if err := h.setSessionCookie(c, result.SessionID); err != nil {
		return response.InternalServerError(c, "Failed to open session")
	}

	return response.Success(c, "Signed in successfully", fiber.Map{
		"user":        toSessionView(result.Session),
		"redirect_to": result.RedirectTo,
	})
}

// Register handles user registration
// @Summary Register
// @Description Create an account on the loan backend and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Profile"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if msg := validate.Email(strings.TrimSpace(req.Email)); msg != "" {
		fields["email"] = msg
	}
	if msg := validate.Password(req.Password); msg != "" {
		fields["password"] = msg
	}
	if msg := validate.FullName(req.FullName); msg != "" {
		fields["fullName"] = msg
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	result, err := h.sessions.Register(c.Context(), strings.TrimSpace(req.Email), req.Password, strings.TrimSpace(req.FullName))
	if err != nil {
		return backendError(c, err)
	}

	if err := h.setSessionCookie(c, result.SessionID); err != nil {
		return response.InternalServerError(c, "Failed to open session")
	}

	// Registration always lands on the dashboard, whatever the role.
	return response.Created(c, "Registered successfully", fiber.Map{
		"user":        toSessionView(result.Session),
		"redirect_to": result.RedirectTo,
	})
}

// Logout handles logout
// @Summary Sign out
// @Description Clear the portal session unconditionally
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Best effort: drop the persisted session if the cookie still resolves.
	// The cookie is cleared and the user lands on /login either way.
	if cookieToken := c.Cookies(middleware.SessionCookieName); cookieToken != "" {
		if claims, err := jwt.ValidateSessionToken(cookieToken, h.cfg.Session.JWTSecret); err == nil {
			h.sessions.Logout(c.Context(), claims.SessionID)
		}
	}

	h.clearSessionCookie(c)

	return response.Success(c, "Signed out", fiber.Map{
		"redirect_to": services.ViewLogin,
	})
}

// Me returns the current session identity
// @Summary Current session
// @Description Echo the authenticated identity for the UI shell
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Security SessionCookie
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.UnauthorizedRedirect(c, "Sign in required", services.ViewLogin)
	}
	return response.Success(c, "", toSessionView(session))
}

// setSessionCookie signs the session id and sets the session cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, sessionID string) error {
	ttl := h.cfg.SessionTTL()
	token, err := jwt.GenerateSessionToken(sessionID, h.cfg.Session.JWTSecret, ttl)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
	return nil
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/adapters/persistence/models"
	"loanhub-portal/internal/adapters/persistence/repositories"
	"loanhub-portal/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Navigation targets handed back to the UI after auth transitions
const (
	ViewLogin     = "/login"
	ViewDashboard = "/dashboard"
	ViewAdmin     = "/admin"
)

// SessionService owns the authenticated session lifecycle: it delegates
// credentials to the backend's identity endpoints, persists the returned
// session, and restores or destroys it on later requests.
type SessionService struct {
	repo repositories.SessionRepository
	auth AuthBackend
	ttl  time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(repo repositories.SessionRepository, auth AuthBackend, ttl time.Duration) *SessionService {
	return &SessionService{
		repo: repo,
		auth: auth,
		ttl:  ttl,
	}
}

// AuthResult is the outcome of a successful login or register
type AuthResult struct {
	SessionID  string
	Session    *domain.Session
	RedirectTo string
}

// Login authenticates against the backend and persists the session.
// On failure nothing is persisted and the backend error is returned as-is.
// An ADMIN lands on the admin view, everyone else on the dashboard.
func (s *SessionService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	// 1. Delegate to the backend identity endpoint
	session, err := s.auth.Login(ctx, backend.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	// 2. Persist and pick the landing view by role
	target := ViewDashboard
	if session.IsAdmin() {
		target = ViewAdmin
	}
	return s.persist(ctx, session, target)
}

// Register creates an account via the backend and persists the session.
// Registration always lands on the user dashboard; no self-registration as
// ADMIN is exposed.
func (s *SessionService) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	session, err := s.auth.Register(ctx, backend.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, session, ViewDashboard)
}

// Restore loads a persisted session by id. A missing or expired row yields
// ErrSessionNotFound/ErrSessionExpired; a row whose record fails to parse is
// deleted and reported as not found — corrupt persisted state is treated as
// absence and never propagates a parse error to the caller.
func (s *SessionService) Restore(ctx context.Context, sessionID string) (*domain.Session, error) {
	row, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if row.IsExpired() {
		_ = s.repo.Delete(ctx, sessionID)
		return nil, domain.ErrSessionExpired
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(row.Record), &session); err != nil ||
		!session.Role.Valid() || session.Token == "" || session.Token != row.Token {
		_ = s.repo.Delete(ctx, sessionID)
		log.Printf("⚠️ Discarded corrupt session record [sid: %s]", sessionID)
		return nil, domain.ErrSessionNotFound
	}

	return &session, nil
}

// Logout unconditionally clears the persisted session. A store failure is
// logged but does not keep the user signed in.
func (s *SessionService) Logout(ctx context.Context, sessionID string) string {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		log.Printf("⚠️ Failed to delete session [sid: %s]: %v", sessionID, err)
	}
	return ViewLogin
}

// persist writes the token and the serialized session record under a fresh
// session id.
func (s *SessionService) persist(ctx context.Context, session *domain.Session, target string) (*AuthResult, error) {
	record, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}

	row := &models.PortalSession{
		ID:        uuid.NewString(),
		Token:     session.Token,
		Record:    string(record),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("✅ Session created: %s [role: %s]", session.Email, session.Role)

	return &AuthResult{
		SessionID:  row.ID,
		Session:    session,
		RedirectTo: target,
	}, nil
}

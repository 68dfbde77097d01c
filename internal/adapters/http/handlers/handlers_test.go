package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/adapters/http/handlers"
	"loanhub-portal/internal/adapters/http/middleware"
	"loanhub-portal/internal/adapters/persistence/models"
	"loanhub-portal/internal/config"
	"loanhub-portal/internal/core/domain"
	"loanhub-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// memRepo is an in-memory stand-in for the gorm session repository
type memRepo struct {
	mu   sync.Mutex
	rows map[string]models.PortalSession
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]models.PortalSession)}
}

func (r *memRepo) Create(_ context.Context, s *models.PortalSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = *s
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.PortalSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, row := range r.rows {
		if row.ExpiresAt.Before(before) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *memRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

// fakeBackend is a stateful stand-in for the external loan service. It
// records call counts so tests can assert which requests ever left the
// portal.
type fakeBackend struct {
	mu          sync.Mutex
	authSession *domain.Session
	authErr     error
	loans       []domain.Loan
	users       []domain.User
	listErr     error

	loginCalls  int
	createCalls int
}

func (f *fakeBackend) Login(_ context.Context, _ backend.LoginRequest) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.authErr != nil {
		return nil, f.authErr
	}
	session := *f.authSession
	return &session, nil
}

func (f *fakeBackend) Register(_ context.Context, req backend.RegisterRequest) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return nil, f.authErr
	}
	session := *f.authSession
	session.Email = req.Email
	session.FullName = req.FullName
	return &session, nil
}

func (f *fakeBackend) CreateLoan(_ context.Context, _ string, req backend.CreateLoanRequest) (*domain.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	loan := domain.Loan{
		ID:          "L-new",
		UserID:      "u-1",
		Amount:      req.Amount,
		TermMonths:  req.TermMonths,
		Status:      domain.StatusPending,
		RequestedAt: time.Now().UTC(),
	}
	f.loans = append(f.loans, loan)
	return &loan, nil
}

func (f *fakeBackend) MyLoans(_ context.Context, _ string) ([]domain.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Loan(nil), f.loans...), nil
}

func (f *fakeBackend) AllLoans(_ context.Context, _ string) ([]domain.Loan, error) {
	return f.MyLoans(nil, "")
}

func (f *fakeBackend) ApproveLoan(_ context.Context, _, id string) (*domain.Loan, error) {
	return f.decide(id, domain.StatusApproved, "")
}

func (f *fakeBackend) RejectLoan(_ context.Context, _, id, reason string) (*domain.Loan, error) {
	return f.decide(id, domain.StatusRejected, reason)
}

func (f *fakeBackend) decide(id string, status domain.LoanStatus, reason string) (*domain.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.loans {
		if f.loans[i].ID != id {
			continue
		}
		if f.loans[i].Status != domain.StatusPending {
			return nil, &backend.Error{Title: "Conflict", Status: 409, Detail: "Loan already decided"}
		}
		now := time.Now().UTC()
		by := "admin-1"
		f.loans[i].Status = status
		f.loans[i].DecisionAt = &now
		f.loans[i].DecisionBy = &by
		if reason != "" {
			f.loans[i].RejectionReason = &reason
		}
		loan := f.loans[i]
		return &loan, nil
	}
	return nil, &backend.Error{Title: "Not Found", Status: 404, Detail: "Loan not found"}
}

func (f *fakeBackend) Users(_ context.Context, _ string) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeBackend) UserByID(_ context.Context, _, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, &backend.Error{Title: "Not Found", Status: 404, Detail: "User not found"}
}

func portalConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{JWTSecret: "test-secret", TTLHours: 1},
		Cookie:  config.CookieConfig{SameSite: "lax"},
	}
}

// newPortalApp wires the handler stack the same way routes.Setup does, with
// the gorm repository and the real backend swapped for fakes.
func newPortalApp(fb *fakeBackend) *fiber.App {
	cfg := portalConfig()
	repo := newMemRepo()

	sessionService := services.NewSessionService(repo, fb, cfg.SessionTTL())
	loanService := services.NewLoanService(fb)
	userService := services.NewUserService(fb)

	authHandler := handlers.NewAuthHandler(sessionService, cfg)
	loanHandler := handlers.NewLoanHandler(loanService)
	userHandler := handlers.NewUserHandler(userService)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})

	api := app.Group("/api/v1")
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireSession(sessionService, cfg), middleware.NoCacheHeaders())
	protected.Get("/auth/me", authHandler.Me)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/loans", loanHandler.OwnLoans)
	dashboard.Post("/loans", loanHandler.CreateLoan)

	admin := protected.Group("/admin", middleware.AdminOnly())
	admin.Get("/loans", loanHandler.AllLoans)
	admin.Patch("/loans/:id/approve", loanHandler.ApproveLoan)
	admin.Patch("/loans/:id/reject", loanHandler.RejectLoan)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)

	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

// sessionCookie extracts the portal session cookie from a login/register
// response so follow-up requests can present it.
func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

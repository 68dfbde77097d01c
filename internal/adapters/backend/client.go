// Package backend is the HTTP client for the external loan service. It
// covers the fixed REST contract (auth, loans, users) and maps failures
// into structured Errors. There is deliberately no retry, caching, or
// optimistic state in here; callers re-fetch after every write.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"loanhub-portal/internal/core/domain"
)

// DefaultTimeout bounds every call to the loan backend.
const DefaultTimeout = 15 * time.Second

// LoginRequest is the credentials payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the profile payload for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// CreateLoanRequest is the payload for POST /loans
type CreateLoanRequest struct {
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"termMonths"`
}

// RejectLoanRequest is the payload for PATCH /loans/{id}/reject
type RejectLoanRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Client talks to the loan backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login authenticates against POST /auth/login.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.Session, error) {
	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account via POST /auth/register.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.Session, error) {
	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateLoan submits a new loan request for the calling user.
// The server assigns id, PENDING status and requestedAt.
func (c *Client) CreateLoan(ctx context.Context, token string, req CreateLoanRequest) (*domain.Loan, error) {
	var loan domain.Loan
	if err := c.do(ctx, http.MethodPost, "/loans", token, req, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// MyLoans fetches the calling user's own loans.
func (c *Client) MyLoans(ctx context.Context, token string) ([]domain.Loan, error) {
	var loans []domain.Loan
	if err := c.do(ctx, http.MethodGet, "/loans/me", token, nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// AllLoans fetches every loan in the system (admin only).
func (c *Client) AllLoans(ctx context.Context, token string) ([]domain.Loan, error) {
	var loans []domain.Loan
	if err := c.do(ctx, http.MethodGet, "/loans", token, nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// ApproveLoan approves a pending loan (admin only).
func (c *Client) ApproveLoan(ctx context.Context, token, id string) (*domain.Loan, error) {
	var loan domain.Loan
	path := "/loans/" + url.PathEscape(id) + "/approve"
	if err := c.do(ctx, http.MethodPatch, path, token, nil, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// RejectLoan rejects a pending loan with an optional reason (admin only).
func (c *Client) RejectLoan(ctx context.Context, token, id, reason string) (*domain.Loan, error) {
	var loan domain.Loan
	path := "/loans/" + url.PathEscape(id) + "/reject"
	if err := c.do(ctx, http.MethodPatch, path, token, RejectLoanRequest{Reason: reason}, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// Users fetches all registered users (admin only).
func (c *Client) Users(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserByID fetches a single user (admin only).
func (c *Client) UserByID(ctx context.Context, token, id string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do runs one request/response cycle against the backend. Non-2xx
// responses are decoded into *Error; a body that fails to decode still
// yields a structured status-only error, never a panic.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if len(raw) > 0 {
		// Best effort: a malformed body still produces a structured error.
		_ = json.Unmarshal(raw, apiErr)
	}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}
	if apiErr.Title == "" {
		apiErr.Title = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

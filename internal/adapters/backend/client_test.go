package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req backend.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)

		json.NewEncoder(w).Encode(domain.Session{
			Token:    "tok-123",
			Email:    req.Email,
			FullName: "Ana Perez",
			Role:     domain.RoleUser,
		})
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, 5*time.Second)
	session, err := client.Login(context.Background(), backend.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, domain.RoleUser, session.Role)
	assert.False(t, session.IsAdmin())
}

func TestLoginErrorDetailSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(backend.Error{
			Title:    "Unauthorized",
			Status:   401,
			Detail:   "Invalid credentials",
			Instance: "/auth/login",
		})
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, 5*time.Second)
	_, err := client.Login(context.Background(), backend.LoginRequest{Email: "a@b.c", Password: "wrong1"})

	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message())
	assert.True(t, apiErr.IsAuthError())
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No problem-details body at all.
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, 5*time.Second)
	_, err := client.MyLoans(context.Background(), "tok")

	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status)
	assert.Equal(t, backend.GenericErrorMessage, apiErr.Message())
}

func TestErrorMalformedBodyStillStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, 5*time.Second)
	_, err := client.AllLoans(context.Background(), "tok")

	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.Title)
}

func TestRejectLoanSendsReasonAndBearer(t *testing.T) {
	decided := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/loans/L1/reject", r.URL.Path)
		require.Equal(t, "Bearer admin-tok", r.Header.Get("Authorization"))

		var req backend.RejectLoanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "insufficient income", req.Reason)

		reason := req.Reason
		by := "admin-1"
		json.NewEncoder(w).Encode(domain.Loan{
			ID:              "L1",
			UserID:          "u-9",
			Amount:          5000,
			TermMonths:      12,
			Status:          domain.StatusRejected,
			DecisionAt:      &decided,
			DecisionBy:      &by,
			RejectionReason: &reason,
		})
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, 5*time.Second)
	loan, err := client.RejectLoan(context.Background(), "admin-tok", "L1", "insufficient income")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, loan.Status)
	require.NotNil(t, loan.DecisionAt)
	require.NotNil(t, loan.RejectionReason)
	assert.Equal(t, "insufficient income", *loan.RejectionReason)
	assert.True(t, loan.IsDecided())
}

func TestContextCancellationAbortsCall(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, 30*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.MyLoans(ctx, "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

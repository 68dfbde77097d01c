package services

import (
	"context"

	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/core/domain"
)

// AuthBackend is the slice of the loan backend used for identity
type AuthBackend interface {
	Login(ctx context.Context, req backend.LoginRequest) (*domain.Session, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*domain.Session, error)
}

// LoanBackend is the slice of the loan backend used for the loan lifecycle
type LoanBackend interface {
	CreateLoan(ctx context.Context, token string, req backend.CreateLoanRequest) (*domain.Loan, error)
	MyLoans(ctx context.Context, token string) ([]domain.Loan, error)
	AllLoans(ctx context.Context, token string) ([]domain.Loan, error)
	ApproveLoan(ctx context.Context, token, id string) (*domain.Loan, error)
	RejectLoan(ctx context.Context, token, id, reason string) (*domain.Loan, error)
}

// UserBackend is the slice of the loan backend used for the user directory
type UserBackend interface {
	Users(ctx context.Context, token string) ([]domain.User, error)
	UserByID(ctx context.Context, token, id string) (*domain.User, error)
}

package services

import (
	"context"

	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/core/domain"
)

// LoanService drives the loan lifecycle against the backend. Every mutating
// call is followed by an unconditional re-fetch of the affected list so the
// caller always sees authoritative state; there is no optimistic update or
// cache to reconcile.
type LoanService struct {
	loans LoanBackend
}

// NewLoanService creates a new loan service
func NewLoanService(loans LoanBackend) *LoanService {
	return &LoanService{loans: loans}
}

// Own returns the calling user's loans.
func (s *LoanService) Own(ctx context.Context, token string) ([]domain.Loan, error) {
	return s.loans.MyLoans(ctx, token)
}

// All returns every loan in the system (admin).
func (s *LoanService) All(ctx context.Context, token string) ([]domain.Loan, error) {
	return s.loans.AllLoans(ctx, token)
}

// Create submits a loan request, then re-fetches the user's list.
// The write is awaited to completion before the read is issued.
func (s *LoanService) Create(ctx context.Context, token string, amount float64, termMonths int) (*domain.Loan, []domain.Loan, error) {
	loan, err := s.loans.CreateLoan(ctx, token, backend.CreateLoanRequest{
		Amount:     amount,
		TermMonths: termMonths,
	})
	if err != nil {
		return nil, nil, err
	}

	list, err := s.loans.MyLoans(ctx, token)
	if err != nil {
		return loan, nil, err
	}
	return loan, list, nil
}

// Approve approves a pending loan, then re-fetches the full list (admin).
func (s *LoanService) Approve(ctx context.Context, token, id string) (*domain.Loan, []domain.Loan, error) {
	loan, err := s.loans.ApproveLoan(ctx, token, id)
	if err != nil {
		return nil, nil, err
	}

	list, err := s.loans.AllLoans(ctx, token)
	if err != nil {
		return loan, nil, err
	}
	return loan, list, nil
}

// Reject rejects a pending loan with an optional reason, then re-fetches
// the full list (admin).
func (s *LoanService) Reject(ctx context.Context, token, id, reason string) (*domain.Loan, []domain.Loan, error) {
	loan, err := s.loans.RejectLoan(ctx, token, id, reason)
	if err != nil {
		return nil, nil, err
	}

	list, err := s.loans.AllLoans(ctx, token)
	if err != nil {
		return loan, nil, err
	}
	return loan, list, nil
}

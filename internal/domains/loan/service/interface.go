package service

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/loan/model"
	"library-api/internal/shared"
)

// ServiceInterface owns the loan lifecycle and the
// single-outstanding-loan rule.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateLoanRequest) (*model.Loan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	// Return flips the returned flag. It deliberately skips the
	// outstanding-loan check: a loan's book association is immutable
	// once created.
	Return(ctx context.Context, id uuid.UUID, returned bool) (*model.Loan, error)
	Find(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error)
	FindByBook(ctx context.Context, bookID uuid.UUID, page shared.PageRequest) ([]model.Loan, int64, error)
}

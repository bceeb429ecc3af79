package repository

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/loan/model"
	"library-api/internal/shared"
)

// RepositoryInterface is the storage gateway for loans.
type RepositoryInterface interface {
	Create(ctx context.Context, l *model.Loan) (*model.Loan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	// ExistsActiveByBook reports whether the book has a loan whose
	// returned flag is not true.
	ExistsActiveByBook(ctx context.Context, bookID uuid.UUID) (bool, error)
	Update(ctx context.Context, l *model.Loan) (*model.Loan, error)
	Find(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error)
	FindByBook(ctx context.Context, bookID uuid.UUID, page shared.PageRequest) ([]model.Loan, int64, error)
}

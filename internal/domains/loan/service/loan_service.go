package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	bookModel "library-api/internal/domains/book/model"
	bookService "library-api/internal/domains/book/service"
	"library-api/internal/domains/loan/model"
	"library-api/internal/domains/loan/repository"
	"library-api/internal/shared"
)

// loanService enforces the loan rules. It never touches book storage
// directly; books are resolved through the book service's contract.
type loanService struct {
	repo  repository.RepositoryInterface
	books bookService.ServiceInterface
}

func NewLoanService(repo repository.RepositoryInterface, books bookService.ServiceInterface) ServiceInterface {
	return &loanService{
		repo:  repo,
		books: books,
	}
}

// Create resolves the requested catalog code to a book, checks that the
// book has no outstanding loan, and persists. Like the isbn rule, the
// pre-check is best effort; the storage-level partial unique index
// closes the race between concurrent loans of the same book.
func (s *loanService) Create(ctx context.Context, req *model.CreateLoanRequest) (*model.Loan, error) {
	book, err := s.books.GetByIsbn(ctx, req.Isbn)
	if err != nil {
		if errors.Is(err, bookModel.ErrBookNotFound) {
			return nil, model.ErrBookNotFoundForIsbn
		}
		return nil, fmt.Errorf("failed to resolve book by isbn: %w", err)
	}

	loaned, err := s.repo.ExistsActiveByBook(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check outstanding loan: %w", err)
	}
	if loaned {
		return nil, model.ErrBookAlreadyLoaned
	}

	loan := &model.Loan{
		Customer:  strings.TrimSpace(req.Customer),
		BookID:    book.ID,
		BookTitle: book.Title,
		BookIsbn:  book.Isbn,
		LoanDate:  req.LoanDate,
	}
	if loan.LoanDate.IsZero() {
		loan.LoanDate = model.Today()
	}

	return s.repo.Create(ctx, loan)
}

func (s *loanService) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	if id == uuid.Nil {
		return nil, model.ErrLoanNotFound
	}

	return s.repo.GetByID(ctx, id)
}

// Return loads the loan and overwrites its returned flag. There is no
// transition back to outstanding enforced here; the caller owns the
// flag's value.
func (s *loanService) Return(ctx context.Context, id uuid.UUID, returned bool) (*model.Loan, error) {
	loan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	loan.Returned = &returned

	return s.repo.Update(ctx, loan)
}

func (s *loanService) Find(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error) {
	filter.Sanitize()

	return s.repo.Find(ctx, filter)
}

// FindByBook lists a book's loan history. The book is resolved first so
// an unknown id reports as a book not-found, not an empty page.
func (s *loanService) FindByBook(ctx context.Context, bookID uuid.UUID, page shared.PageRequest) ([]model.Loan, int64, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, 0, err
	}

	page.Sanitize()

	return s.repo.FindByBook(ctx, book.ID, page)
}

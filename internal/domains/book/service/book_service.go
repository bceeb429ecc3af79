package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
)

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{
		repo: repo,
	}
}

// Create persists a new book after the isbn-uniqueness check.
// The check is a best-effort guard; the database unique constraint
// closes the race between concurrent creates with the same isbn.
func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	isbn := strings.TrimSpace(req.Isbn)

	exists, err := s.repo.ExistsByIsbn(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to check isbn uniqueness: %w", err)
	}
	if exists {
		return nil, model.ErrIsbnAlreadyExists
	}

	book := &model.Book{
		Title:  strings.TrimSpace(req.Title),
		Author: strings.TrimSpace(req.Author),
		Isbn:   isbn,
	}

	return s.repo.Create(ctx, book)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}

	return s.repo.GetByID(ctx, id)
}

// GetByIsbn resolves a book by its catalog code. Absence is a normal
// outcome, reported as ErrBookNotFound.
func (s *bookService) GetByIsbn(ctx context.Context, isbn string) (*model.Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, model.ErrBookNotFound
	}

	return s.repo.GetByIsbn(ctx, isbn)
}

// Update overwrites the stored record. A book that was never persisted
// is a caller bug, rejected before any storage access.
func (s *bookService) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b == nil || b.ID == uuid.Nil {
		return nil, model.ErrBookIDRequired
	}

	return s.repo.Update(ctx, b)
}

// Delete removes the book permanently, under the same id precondition.
func (s *bookService) Delete(ctx context.Context, b *model.Book) error {
	if b == nil || b.ID == uuid.Nil {
		return model.ErrBookIDRequired
	}

	return s.repo.Delete(ctx, b.ID)
}

func (s *bookService) Find(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	filter.Sanitize()

	return s.repo.Find(ctx, filter)
}

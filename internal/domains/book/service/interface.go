package service

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
)

// ServiceInterface owns the book lifecycle and the isbn-uniqueness rule.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetByIsbn(ctx context.Context, isbn string) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, b *model.Book) error
	Find(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
)

// RepositoryInterface is the storage gateway for books.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetByIsbn(ctx context.Context, isbn string) (*model.Book, error)
	ExistsByIsbn(ctx context.Context, isbn string) (bool, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
}

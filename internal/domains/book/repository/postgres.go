package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domains/book/model"
	"library-api/internal/shared/utils"
	"library-api/pkg/cache"
)

// queryExecutor is the slice of pgxpool.Pool the repository uses,
// split out so tests can substitute a fake connection.
type queryExecutor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// postgresRepository implements RepositoryInterface over pgxpool,
// with Redis caching for point lookups.
type postgresRepository struct {
	pool  queryExecutor
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	bookIsbnKeyPrefix  = "book:isbn:"
	cacheTTL           = 15 * time.Minute
)

const bookColumns = "id, title, author, isbn, created_at, updated_at"

// Create inserts a new book. The isbn uniqueness rule is backed by a
// unique constraint, so a concurrent insert that slips past the service
// pre-check still surfaces as ErrIsbnAlreadyExists.
func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, author, isbn)
        VALUES ($1, $2, $3)
        RETURNING ` + bookColumns

	var created model.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.Author, b.Isbn).Scan(
		&created.ID,
		&created.Title,
		&created.Author,
		&created.Isbn,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "isbn") {
				return nil, model.ErrIsbnAlreadyExists
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a book by id, trying the cache first.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	cached, err := r.cache.Get(ctx, cacheKey, &b)
	if err == nil && cached {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Isbn,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return &b, nil
}

// GetByIsbn retrieves a book by its catalog code with caching.
// Used by the loan domain to resolve loan requests.
func (r *postgresRepository) GetByIsbn(ctx context.Context, isbn string) (*model.Book, error) {
	cacheKey := bookIsbnKeyPrefix + isbn

	var b model.Book
	cached, err := r.cache.Get(ctx, cacheKey, &b)
	if err == nil && cached {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	err = r.pool.QueryRow(ctx, query, isbn).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Isbn,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}

	// Cache under both keys so either lookup path hits
	r.cache.Set(ctx, cacheKey, b, cacheTTL)
	r.cache.Set(ctx, bookCacheKeyPrefix+b.ID.String(), b, cacheTTL)

	return &b, nil
}

// ExistsByIsbn is the lightweight uniqueness pre-check.
func (r *postgresRepository) ExistsByIsbn(ctx context.Context, isbn string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, isbn).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check isbn existence: %w", err)
	}

	return exists, nil
}

// Update overwrites the stored record matching the book's id. The
// stored isbn is loaded first: when the update changes it, the cache
// entry keyed by the old isbn must be dropped too, or GetByIsbn keeps
// resolving the freed code to this book until the TTL expires.
func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	var oldIsbn string
	err := r.pool.QueryRow(ctx, `SELECT isbn FROM books WHERE id = $1`, b.ID).Scan(&oldIsbn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book for update: %w", err)
	}

	query := `
        UPDATE books
        SET title = $1, author = $2, isbn = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING ` + bookColumns

	var updated model.Book
	err = r.pool.QueryRow(ctx, query, b.Title, b.Author, b.Isbn, b.ID).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Author,
		&updated.Isbn,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "isbn") {
				return nil, model.ErrIsbnAlreadyExists
			}
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidateBookCache(ctx, b.ID, oldIsbn, updated.Isbn)

	return &updated, nil
}

// Delete removes the book permanently.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Fetch the isbn first so the isbn cache entry can be dropped too
	var isbn string
	err := r.pool.QueryRow(ctx, `SELECT isbn FROM books WHERE id = $1`, id).Scan(&isbn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		return fmt.Errorf("failed to load book for delete: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidateBookCache(ctx, id, isbn)

	return nil
}

// Find returns a page of books matching the filter, newest first,
// plus the total count for pagination.
func (r *postgresRepository) Find(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	where, args := buildBookFilterWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookColumns + ` FROM books`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Isbn,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM books` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// buildBookFilterWhere builds the WHERE clause for Find. Empty filter
// fields impose no constraint; non-empty ones AND together as
// case-insensitive contains matches.
func buildBookFilterWhere(filter model.BookFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Title != "" {
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Title+"%")
	}
	if filter.Author != "" {
		clauses = append(clauses, fmt.Sprintf("author ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Author+"%")
	}
	if filter.Isbn != "" {
		clauses = append(clauses, fmt.Sprintf("isbn ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Isbn+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + utils.JoinWithAnd(clauses), args
}

func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID, isbns ...string) {
	keys := []string{bookCacheKeyPrefix + id.String()}
	for _, isbn := range isbns {
		keys = append(keys, bookIsbnKeyPrefix+isbn)
	}
	r.cache.Delete(ctx, keys...)
}

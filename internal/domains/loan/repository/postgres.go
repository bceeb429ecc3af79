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

	"library-api/internal/domains/loan/model"
	"library-api/internal/shared"
	"library-api/internal/shared/utils"
)

// postgresRepository implements RepositoryInterface over pgxpool.
// Loan reads join the books table so responses can show the book's
// title and catalog code without a second query.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const loanSelect = `
        SELECT l.id, l.customer, l.book_id, b.title, b.isbn,
               l.loan_date, l.returned, l.created_at, l.updated_at
        FROM loans l
        JOIN books b ON b.id = l.book_id`

func scanLoan(row pgx.Row) (*model.Loan, error) {
	var l model.Loan
	var loanDate time.Time

	err := row.Scan(
		&l.ID,
		&l.Customer,
		&l.BookID,
		&l.BookTitle,
		&l.BookIsbn,
		&loanDate,
		&l.Returned,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.LoanDate = model.Date{Time: loanDate}
	return &l, nil
}

// Create inserts a new loan. The partial unique index on outstanding
// loans backs the single-active-loan rule, so a concurrent insert that
// slips past the service pre-check still surfaces as ErrBookAlreadyLoaned.
func (r *postgresRepository) Create(ctx context.Context, l *model.Loan) (*model.Loan, error) {
	query := `
        INSERT INTO loans (customer, book_id, loan_date)
        VALUES ($1, $2, $3)
        RETURNING id, customer, book_id, loan_date, returned, created_at, updated_at`

	var created model.Loan
	var loanDate time.Time
	err := r.pool.QueryRow(ctx, query, l.Customer, l.BookID, l.LoanDate.Time).Scan(
		&created.ID,
		&created.Customer,
		&created.BookID,
		&loanDate,
		&created.Returned,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "outstanding") {
				return nil, model.ErrBookAlreadyLoaned
			}
		}
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	created.LoanDate = model.Date{Time: loanDate}
	created.BookTitle = l.BookTitle
	created.BookIsbn = l.BookIsbn

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	l, err := scanLoan(r.pool.QueryRow(ctx, loanSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan by id: %w", err)
	}

	return l, nil
}

// ExistsActiveByBook checks the outstanding-loan invariant. "returned
// IS NOT TRUE" covers both unset and false.
func (r *postgresRepository) ExistsActiveByBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE book_id = $1 AND returned IS NOT TRUE)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active loan: %w", err)
	}

	return exists, nil
}

// Update overwrites the mutable loan fields, principally the returned
// flag for a return transaction.
func (r *postgresRepository) Update(ctx context.Context, l *model.Loan) (*model.Loan, error) {
	query := `
        UPDATE loans
        SET customer = $1, returned = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING id, customer, book_id, loan_date, returned, created_at, updated_at`

	var updated model.Loan
	var loanDate time.Time
	err := r.pool.QueryRow(ctx, query, l.Customer, l.Returned, l.ID).Scan(
		&updated.ID,
		&updated.Customer,
		&updated.BookID,
		&loanDate,
		&updated.Returned,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}

	updated.LoanDate = model.Date{Time: loanDate}
	updated.BookTitle = l.BookTitle
	updated.BookIsbn = l.BookIsbn

	return &updated, nil
}

// Find returns a page of loans matching the filter plus the total count.
func (r *postgresRepository) Find(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error) {
	where, args := buildLoanFilterWhere(filter)

	query := fmt.Sprintf("%s%s ORDER BY l.loan_date DESC, l.created_at DESC LIMIT $%d OFFSET $%d",
		loanSelect, where, len(args)+1, len(args)+2)

	loans, err := r.queryLoans(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM loans l JOIN books b ON b.id = l.book_id` + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	return loans, total, nil
}

// FindByBook returns the loan history of one book, newest first.
func (r *postgresRepository) FindByBook(ctx context.Context, bookID uuid.UUID, page shared.PageRequest) ([]model.Loan, int64, error) {
	query := loanSelect + ` WHERE l.book_id = $1
        ORDER BY l.loan_date DESC, l.created_at DESC LIMIT $2 OFFSET $3`

	loans, err := r.queryLoans(ctx, query, bookID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE book_id = $1`, bookID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	return loans, total, nil
}

func (r *postgresRepository) queryLoans(ctx context.Context, query string, args ...interface{}) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loans: %w", err)
	}

	return loans, nil
}

// buildLoanFilterWhere builds the WHERE clause for Find. Unlike the
// book filter, isbn and customer combine with OR: the page is the
// union of both match sets, mirroring the product's loan search.
func buildLoanFilterWhere(filter model.LoanFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Isbn != "" {
		clauses = append(clauses, fmt.Sprintf("b.isbn = $%d", len(args)+1))
		args = append(args, filter.Isbn)
	}
	if filter.Customer != "" {
		clauses = append(clauses, fmt.Sprintf("l.customer = $%d", len(args)+1))
		args = append(args, filter.Customer)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + utils.JoinWithOr(clauses), args
}

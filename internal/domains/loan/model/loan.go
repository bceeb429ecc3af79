package model

import (
	"time"

	"github.com/google/uuid"

	"library-api/internal/shared"
)

// Loan records a book being lent to a customer. A loan whose Returned
// flag is unset or false is outstanding; at most one outstanding loan
// may exist per book at any time.
type Loan struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Customer string    `json:"customer" db:"customer"`
	BookID   uuid.UUID `json:"book_id" db:"book_id"`
	LoanDate Date      `json:"loan_date" db:"loan_date"`
	Returned *bool     `json:"returned" db:"returned"`

	// Denormalized book fields, populated by list/get queries.
	BookTitle string `json:"book_title,omitempty" db:"-"`
	BookIsbn  string `json:"book_isbn,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsReturned treats the tri-state flag as a boolean.
func (l *Loan) IsReturned() bool {
	return l.Returned != nil && *l.Returned
}

// LoanFilter drives the loan list endpoint. Isbn and Customer combine
// with OR: the result is the union of loans for that catalog code and
// loans for that customer.
type LoanFilter struct {
	Isbn     string
	Customer string

	shared.PageRequest
}

package model

import (
	"time"

	"github.com/google/uuid"

	"library-api/internal/shared"
)

// Book is a catalog entry. The ID is assigned by the database; the
// zero value (uuid.Nil) means the book has not been persisted yet.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Isbn      string    `json:"isbn" db:"isbn"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BookFilter drives the list endpoint. Non-empty fields constrain the
// scan with a case-insensitive contains match, combined with AND.
type BookFilter struct {
	Title  string
	Author string
	Isbn   string

	shared.PageRequest
}

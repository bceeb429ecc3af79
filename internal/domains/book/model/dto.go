package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared"
)

// CreateBookRequest is the payload for POST /books.
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Isbn   string `json:"isbn"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Isbn,
			validation.Required.Error("isbn is required"),
			validation.Length(1, 32),
		),
	)
}

// UpdateBookRequest is the payload for PUT /books/:id.
// The isbn is optional; when empty the stored one is kept.
type UpdateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Isbn   string `json:"isbn"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Isbn, validation.Length(1, 32)),
	)
}

// FindBooksQuery binds the list endpoint's query string.
type FindBooksQuery struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	Isbn   string `form:"isbn"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q FindBooksQuery) ToFilter() BookFilter {
	return BookFilter{
		Title:  q.Title,
		Author: q.Author,
		Isbn:   q.Isbn,
		PageRequest: shared.PageRequest{
			Page:  q.Page,
			Limit: q.Limit,
		},
	}
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared"
)

// CreateLoanRequest is the payload for POST /loans. The book is
// addressed by its catalog code, not by id. LoanDate is optional and
// defaults to today.
type CreateLoanRequest struct {
	Isbn     string `json:"isbn"`
	Customer string `json:"customer"`
	LoanDate Date   `json:"loan_date"`
}

func (r CreateLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Isbn,
			validation.Required.Error("isbn is required"),
			validation.Length(1, 32),
		),
		validation.Field(&r.Customer,
			validation.Required.Error("customer is required"),
			validation.Length(1, 255),
		),
	)
}

// ReturnLoanRequest is the payload for PATCH /loans/:id.
type ReturnLoanRequest struct {
	Returned *bool `json:"returned"`
}

func (r ReturnLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Returned,
			validation.NotNil.Error("returned is required"),
		),
	)
}

// FindLoansQuery binds the list endpoint's query string.
type FindLoansQuery struct {
	Isbn     string `form:"isbn"`
	Customer string `form:"customer"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (q FindLoansQuery) ToFilter() LoanFilter {
	return LoanFilter{
		Isbn:     q.Isbn,
		Customer: q.Customer,
		PageRequest: shared.PageRequest{
			Page:  q.Page,
			Limit: q.Limit,
		},
	}
}

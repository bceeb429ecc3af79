package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/shared/response"
	"library-api/pkg/logger"
)

var (
	ErrLoanNotFound = errors.New("loan not found")

	// ErrBookAlreadyLoaned enforces the single-outstanding-loan rule.
	// The message is part of the API contract.
	ErrBookAlreadyLoaned = errors.New("Book already loaned")

	// ErrBookNotFoundForIsbn is raised when a loan request names a
	// catalog code no book carries.
	ErrBookNotFoundForIsbn = errors.New("Book not found for passed isbn")

	ErrLoanIDRequired = errors.New("loan id can't be null")
	ErrInvalidLoanID  = errors.New("invalid loan id")
)

var loanErrorMap = map[error]struct {
	Status int
	Code   string
}{
	ErrLoanNotFound:        {Status: http.StatusNotFound, Code: "NOT_FOUND"},
	ErrBookAlreadyLoaned:   {Status: http.StatusConflict, Code: "BUSINESS_RULE"},
	ErrBookNotFoundForIsbn: {Status: http.StatusBadRequest, Code: "BUSINESS_RULE"},
	ErrLoanIDRequired:      {Status: http.StatusBadRequest, Code: "INVALID_ARGUMENT"},
	ErrInvalidLoanID:       {Status: http.StatusBadRequest, Code: "INVALID_ARGUMENT"},
}

// HandleLoanError translates a service error into an HTTP response.
// Returns false when err is nil so handlers can use it as a guard.
func HandleLoanError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range loanErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, sentinel.Error())
			return true
		}
	}

	logger.Error("unexpected loan error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}

package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/shared/response"
	"library-api/pkg/logger"
)

var (
	ErrBookNotFound = errors.New("book not found")

	// ErrIsbnAlreadyExists carries the catalog-code uniqueness rule.
	// The message is part of the API contract.
	ErrIsbnAlreadyExists = errors.New("Isbn já cadastrado.")

	// ErrBookIDRequired is raised when delete/update receive a book
	// that was never persisted. It must fire before any storage call.
	ErrBookIDRequired = errors.New("book id can't be null")

	ErrInvalidBookID = errors.New("invalid book id")
)

var bookErrorMap = map[error]struct {
	Status int
	Code   string
}{
	ErrBookNotFound:      {Status: http.StatusNotFound, Code: "NOT_FOUND"},
	ErrIsbnAlreadyExists: {Status: http.StatusConflict, Code: "BUSINESS_RULE"},
	ErrBookIDRequired:    {Status: http.StatusBadRequest, Code: "INVALID_ARGUMENT"},
	ErrInvalidBookID:     {Status: http.StatusBadRequest, Code: "INVALID_ARGUMENT"},
}

// HandleBookError translates a service error into an HTTP response.
// Returns false when err is nil so handlers can use it as a guard.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, sentinel.Error())
			return true
		}
	}

	logger.Error("unexpected book error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookModel "library-api/internal/domains/book/model"
	"library-api/internal/domains/loan/model"
	"library-api/internal/domains/loan/service"
	"library-api/internal/shared"
	"library-api/internal/shared/response"
)

// LoanHandler handles HTTP requests for the loan domain.
type LoanHandler struct {
	service service.ServiceInterface
}

func NewLoanHandler(service service.ServiceInterface) *LoanHandler {
	return &LoanHandler{
		service: service,
	}
}

// Create handles POST /loans
func (h *LoanHandler) Create(c *gin.Context) {
	var req model.CreateLoanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationError(c, shared.ValidationMessages(err))
		return
	}

	loan, err := h.service.Create(c.Request.Context(), &req)
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// Get handles GET /loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		model.HandleLoanError(c, model.ErrInvalidLoanID)
		return
	}

	loan, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// Return handles PATCH /loans/:id, the return transaction.
func (h *LoanHandler) Return(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		model.HandleLoanError(c, model.ErrInvalidLoanID)
		return
	}

	var req model.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationError(c, shared.ValidationMessages(err))
		return
	}

	loan, err := h.service.Return(c.Request.Context(), id, *req.Returned)
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// Find handles GET /loans
func (h *LoanHandler) Find(c *gin.Context) {
	var query model.FindLoansQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	filter := query.ToFilter()
	filter.Sanitize()

	loans, total, err := h.service.Find(c.Request.Context(), filter)
	if model.HandleLoanError(c, err) {
		return
	}

	if loans == nil {
		loans = []model.Loan{}
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// ListByBook handles GET /books/:id/loans, a book's loan history.
func (h *LoanHandler) ListByBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bookModel.HandleBookError(c, bookModel.ErrInvalidBookID)
		return
	}

	var page shared.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	page.Sanitize()

	loans, total, err := h.service.FindByBook(c.Request.Context(), id, page)
	if err != nil {
		if errors.Is(err, bookModel.ErrBookNotFound) {
			bookModel.HandleBookError(c, err)
			return
		}
		model.HandleLoanError(c, err)
		return
	}

	if loans == nil {
		loans = []model.Loan{}
	}

	response.SuccessWithMeta(c, http.StatusOK, loans, &response.Meta{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	})
}

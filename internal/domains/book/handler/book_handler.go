package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/service"
	"library-api/internal/shared"
	"library-api/internal/shared/response"
)

// BookHandler handles HTTP requests for the book domain.
type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: service,
	}
}

// Create handles POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationError(c, shared.ValidationMessages(err))
		return
	}

	book, err := h.service.Create(c.Request.Context(), &req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Get handles GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		model.HandleBookError(c, model.ErrInvalidBookID)
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Update handles PUT /books/:id. The stored record is loaded first so
// a missing book is a 404 before any rule check runs.
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		model.HandleBookError(c, model.ErrInvalidBookID)
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationError(c, shared.ValidationMessages(err))
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	book.Title = req.Title
	book.Author = req.Author
	if req.Isbn != "" {
		book.Isbn = req.Isbn
	}

	updated, err := h.service.Update(c.Request.Context(), book)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		model.HandleBookError(c, model.ErrInvalidBookID)
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), book); model.HandleBookError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// Find handles GET /books
func (h *BookHandler) Find(c *gin.Context) {
	var query model.FindBooksQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	filter := query.ToFilter()
	filter.Sanitize()

	books, total, err := h.service.Find(c.Request.Context(), filter)
	if model.HandleBookError(c, err) {
		return
	}

	if books == nil {
		books = []model.Book{}
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/book/service"
	"bookswap-backend/internal/shared/middleware"
	"bookswap-backend/internal/shared/response"
	"bookswap-backend/pkg/logger"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: service,
	}
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	userID, ok := middleware.MustCurrentUserID(c)
	if !ok {
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+book.ID.String())
	response.Success(c, http.StatusCreated, book)
}

// ListAvailable handles GET /books.
func (h *BookHandler) ListAvailable(c *gin.Context) {
	// Browsing is allowed without authentication; exclude_mine only
	// applies to logged-in callers.
	viewer, _ := middleware.CurrentUserID(c)

	var query model.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	books, total, err := h.service.ListAvailable(c.Request.Context(), viewer, query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	query.SetDefaults()
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
	})
}

// ListMine handles GET /books/mine.
func (h *BookHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.MustCurrentUserID(c)
	if !ok {
		return
	}

	books, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "book not found")
	case errors.Is(err, model.ErrMetadataNotFound):
		response.NotFound(c, "book not found in catalog")
	default:
		logger.Error("book handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}

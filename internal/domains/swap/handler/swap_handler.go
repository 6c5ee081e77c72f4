package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookModel "bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/swap/model"
	"bookswap-backend/internal/domains/swap/service"
	"bookswap-backend/internal/shared/middleware"
	"bookswap-backend/internal/shared/response"
	"bookswap-backend/pkg/logger"
)

type SwapHandler struct {
	service service.ServiceInterface
}

func NewSwapHandler(service service.ServiceInterface) *SwapHandler {
	return &SwapHandler{
		service: service,
	}
}

// Request handles POST /swaps/request.
func (h *SwapHandler) Request(c *gin.Context) {
	userID, ok := middleware.MustCurrentUserID(c)
	if !ok {
		return
	}

	var req model.RequestSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	swap, err := h.service.Request(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, swap)
}

// Accept handles PUT /swaps/:id/accept.
func (h *SwapHandler) Accept(c *gin.Context) {
	h.simpleTransition(c, h.service.Accept)
}

// Decline handles PUT /swaps/:id/decline.
func (h *SwapHandler) Decline(c *gin.Context) {
	h.simpleTransition(c, h.service.Decline)
}

// Ship handles PUT /swaps/:id/ship.
func (h *SwapHandler) Ship(c *gin.Context) {
	userID, ok := middleware.MustCurrentUserID(c)
	if !ok {
		return
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid swap id")
		return
	}

	var req model.ShipSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body still reaches the service so the missing
		// tracking reference surfaces as its own error kind.
		req.TrackingNumber = ""
	}

	swap, err := h.service.Ship(c.Request.Context(), userID, swapID, req.TrackingNumber)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, swap)
}

// Confirm handles PUT /swaps/:id/confirm.
func (h *SwapHandler) Confirm(c *gin.Context) {
	h.simpleTransition(c, h.service.Confirm)
}

// ListMine handles GET /swaps/mine.
func (h *SwapHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.MustCurrentUserID(c)
	if !ok {
		return
	}

	swaps, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, swaps)
}

// simpleTransition handles the transitions that take no request body.
func (h *SwapHandler) simpleTransition(
	c *gin.Context,
	op func(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error),
) {
	userID, ok := middleware.MustCurrentUserID(c)
	if !ok {
		return
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid swap id")
		return
	}

	swap, err := op(c.Request.Context(), userID, swapID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, swap)
}

func (h *SwapHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrSwapNotFound),
		errors.Is(err, bookModel.ErrBookNotFound),
		errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrForbidden),
		errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, model.ErrInvalidState):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, bookModel.ErrBookNotAvailable):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrSelfSwap),
		errors.Is(err, model.ErrInsufficientPoints),
		errors.Is(err, model.ErrMissingTracking):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrConflict):
		response.Conflict(c, err.Error())
	default:
		logger.Error("swap handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/engagement"
	"bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
)

type ReviewHandler struct {
	service engagement.Service
}

func NewReviewHandler(svc engagement.Service) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// AddBookReview - POST /v1/books/:id/reviews
func (h *ReviewHandler) AddBookReview(c *gin.Context) {
	h.addReview(c, model.KindBook)
}

// AddAuthorReview - POST /v1/authors/:id/reviews
func (h *ReviewHandler) AddAuthorReview(c *gin.Context) {
	h.addReview(c, model.KindAuthor)
}

func (h *ReviewHandler) addReview(c *gin.Context, kind model.Kind) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req model.AddReviewRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthenticated(c, "authentication required")
		return
	}

	metadata, err := h.service.AddReview(c.Request.Context(), kind, entityID, callerID, middleware.CallerEmail(c), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.Is(err, engagement.ErrEntityNotFound):
			response.NotFound(c, err.Error())
		case errors.As(err, &vErrs):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid review", vErrs)
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, metadata)
}

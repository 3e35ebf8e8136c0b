package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/author/model"
	bookmodel "bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/engagement"
	emodel "bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/internal/shared/utils"
)

// BookLister supplies the books shown on an author detail page.
type BookLister interface {
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error)
}

type AuthorHandler struct {
	service    author.Service
	books      BookLister
	engagement engagement.Service
	storage    *storage.MinIOStorage
}

func NewAuthorHandler(svc author.Service, books BookLister, eng engagement.Service, store *storage.MinIOStorage) *AuthorHandler {
	return &AuthorHandler{service: svc, books: books, engagement: eng, storage: store}
}

type authorDetail struct {
	*model.Author
	Books    []bookmodel.Book `json:"books"`
	Metadata *emodel.Metadata `json:"metadata,omitempty"`
}

// Create - POST /v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// GetAll - GET /v1/authors
func (h *AuthorHandler) GetAll(c *gin.Context) {
	filter, err := parseAuthorFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authors, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	page := filter.Pagination.Normalize()
	response.SuccessWithMeta(c, http.StatusOK, authors, &response.Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: page.TotalPages(total),
	})
}

// GetByID - GET /v1/authors/:id
// Composes the relational row with the author's books and engagement metadata.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	books, err := h.books.ListByAuthor(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	metadata, err := h.engagement.GetMetadata(c.Request.Context(), emodel.KindAuthor, id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, authorDetail{Author: a, Books: books, Metadata: metadata})
}

// Update - PUT /v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// Delete - DELETE /v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadPhoto - POST /v1/authors/:id/photo
func (h *AuthorHandler) UploadPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	upload, err := utils.ReadImageUpload(c, "photo")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := fmt.Sprintf("authors/%s/%s%s", id, uuid.New(), upload.Ext)
	url, err := h.storage.Upload(c.Request.Context(), key, upload.Data, upload.ContentType)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	a, err := h.service.SetPhotoURL(c.Request.Context(), id, url)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *AuthorHandler) renderError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", vErrs)
		return
	}
	response.ErrorResponse(c, author.ToHTTPStatus(err), author.ToErrorCode(err), err.Error())
}

func parseAuthorFilter(c *gin.Context) (model.AuthorFilter, error) {
	filter := model.AuthorFilter{
		Name:       c.Query("name"),
		Pagination: parsePagination(c),
	}

	var err error
	if filter.BornAfter, err = parseDateQuery(c, "born_after"); err != nil {
		return filter, err
	}
	if filter.BornBefore, err = parseDateQuery(c, "born_before"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parsePagination(c *gin.Context) shared.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return shared.Pagination{Page: page, Limit: limit}.Normalize()
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be formatted as YYYY-MM-DD", name)
	}
	return &t, nil
}

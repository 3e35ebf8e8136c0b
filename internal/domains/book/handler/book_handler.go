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

	authormodel "bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/engagement"
	emodel "bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/internal/shared/utils"
)

// AuthorGetter supplies the full author embedded in a book detail response.
type AuthorGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
}

type BookHandler struct {
	service    book.Service
	authors    AuthorGetter
	engagement engagement.Service
	storage    *storage.MinIOStorage
}

func NewBookHandler(svc book.Service, authors AuthorGetter, eng engagement.Service, store *storage.MinIOStorage) *BookHandler {
	return &BookHandler{service: svc, authors: authors, engagement: eng, storage: store}
}

type bookDetail struct {
	*model.Book
	Author   *authormodel.Author `json:"author,omitempty"`
	Metadata *emodel.Metadata    `json:"metadata,omitempty"`
}

// Create - POST /v1/books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// GetAll - GET /v1/books
func (h *BookHandler) GetAll(c *gin.Context) {
	filter, err := parseBookFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	page := filter.Pagination.Normalize()
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: page.TotalPages(total),
	})
}

// GetByID - GET /v1/books/:id
// A detail fetch counts as a view, so the view counter is bumped before
// the metadata is read.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.engagement.RecordView(c.Request.Context(), emodel.KindBook, id)

	a, err := h.authors.GetByID(c.Request.Context(), b.AuthorID)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	metadata, err := h.engagement.GetMetadata(c.Request.Context(), emodel.KindBook, id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, bookDetail{Book: b, Author: a, Metadata: metadata})
}

// Update - PUT /v1/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req model.UpdateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Delete - DELETE /v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
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

// UploadCover - POST /v1/books/:id/cover
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	upload, err := utils.ReadImageUpload(c, "cover")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := fmt.Sprintf("books/%s/%s%s", id, uuid.New(), upload.Ext)
	url, err := h.storage.Upload(c.Request.Context(), key, upload.Data, upload.ContentType)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	b, err := h.service.SetCoverURL(c.Request.Context(), id, url)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Export - GET /v1/admin/books/export
func (h *BookHandler) Export(c *gin.Context) {
	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	filename := fmt.Sprintf("books-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *BookHandler) renderError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", vErrs)
		return
	}
	response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
}

func parseBookFilter(c *gin.Context) (model.BookFilter, error) {
	filter := model.BookFilter{
		Title:      c.Query("title"),
		Pagination: parsePagination(c),
	}

	if raw := c.Query("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("author_id must be a UUID")
		}
		filter.AuthorID = &id
	}

	var err error
	if filter.PublishedAfter, err = parseDateQuery(c, "published_after"); err != nil {
		return filter, err
	}
	if filter.PublishedBefore, err = parseDateQuery(c, "published_before"); err != nil {
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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/author"
	authormodel "bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/engagement"
	emodel "bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/shared/validation"
)

type bookService struct {
	repo    book.Repository
	authors book.AuthorReader
	cleaner engagement.Cleaner
}

func NewBookService(repo book.Repository, authors book.AuthorReader, cleaner engagement.Cleaner) book.Service {
	return &bookService{repo: repo, authors: authors, cleaner: cleaner}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *bookService) lookupAuthor(ctx context.Context, id uuid.UUID) (*authormodel.Author, error) {
	a, err := s.authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, book.ErrAuthorNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		return nil, book.ErrAuthorNotFound
	}
	a, err := s.lookupAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	publishedDate, err := parseDate(req.PublishedDate)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateBookDates(publishedDate, a.BornDate, time.Now().UTC()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &model.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		PublishedDate: publishedDate,
		CoverURL:      req.CoverURL,
		AuthorID:      authorID,
		AuthorName:    a.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	filter.Pagination = filter.Pagination.Normalize()
	return s.repo.GetAll(ctx, filter)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.PublishedDate != nil {
		publishedDate, err := parseDate(req.PublishedDate)
		if err != nil {
			return nil, err
		}
		b.PublishedDate = publishedDate
	}
	if req.CoverURL != nil {
		b.CoverURL = req.CoverURL
	}
	if req.AuthorID != nil {
		authorID, err := uuid.Parse(*req.AuthorID)
		if err != nil {
			return nil, book.ErrAuthorNotFound
		}
		b.AuthorID = authorID
	}

	// Chronology is revalidated against the current author, which may have
	// just changed.
	a, err := s.lookupAuthor(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateBookDates(b.PublishedDate, a.BornDate, time.Now().UTC()); err != nil {
		return nil, err
	}
	b.AuthorName = a.Name

	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cleaner.EnqueueMetadataDelete(emodel.KindBook, id); err != nil {
		log.Error().Err(err).Str("book_id", id.String()).Msg("failed to enqueue metadata delete")
	}
	return nil
}

func (s *bookService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *bookService) SetCoverURL(ctx context.Context, id uuid.UUID, url string) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.CoverURL = &url
	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

var exportHeaders = []string{"ID", "Title", "Author", "Published", "Description", "Cover URL", "Created At"}

func (s *bookService) ExportXLSX(ctx context.Context) ([]byte, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Books"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write export header: %w", err)
		}
	}

	for i, b := range books {
		row := i + 2
		values := []interface{}{
			b.ID.String(),
			b.Title,
			b.AuthorName,
			formatDate(b.PublishedDate),
			derefString(b.Description),
			derefString(b.CoverURL),
			b.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write export row %d: %w", row, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

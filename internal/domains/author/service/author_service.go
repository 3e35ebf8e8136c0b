package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/engagement"
	emodel "bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/shared/validation"
)

type authorService struct {
	repo    author.Repository
	books   author.BookCounter
	cleaner engagement.Cleaner
}

func NewAuthorService(repo author.Repository, books author.BookCounter, cleaner engagement.Cleaner) author.Service {
	return &authorService{repo: repo, books: books, cleaner: cleaner}
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

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bornDate, err := parseDate(req.BornDate)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateAuthorDates(bornDate, time.Now().UTC()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &model.Author{
		ID:        uuid.New(),
		Name:      req.Name,
		Biography: req.Biography,
		BornDate:  bornDate,
		PhotoURL:  req.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	filter.Pagination = filter.Pagination.Normalize()
	return s.repo.GetAll(ctx, filter)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Biography != nil {
		a.Biography = req.Biography
	}
	if req.BornDate != nil {
		bornDate, err := parseDate(req.BornDate)
		if err != nil {
			return nil, err
		}
		a.BornDate = bornDate
	}
	if req.PhotoURL != nil {
		a.PhotoURL = req.PhotoURL
	}

	if err := validation.ValidateAuthorDates(a.BornDate, time.Now().UTC()); err != nil {
		return nil, err
	}

	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.books.CountByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return author.ErrAuthorHasBooks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Metadata cleanup is eventually consistent: the queued task removes
	// the document, and the nightly orphan sweep catches anything missed.
	if err := s.cleaner.EnqueueMetadataDelete(emodel.KindAuthor, id); err != nil {
		log.Error().Err(err).Str("author_id", id.String()).Msg("failed to enqueue metadata delete")
	}
	return nil
}

func (s *authorService) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) (*model.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.PhotoURL = &url
	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/engagement"
	"bookcatalog-backend/internal/domains/engagement/model"
)

// engagementService implements engagement.Service.
type engagementService struct {
	repo    engagement.Repository
	books   engagement.EntityChecker
	authors engagement.EntityChecker
}

func NewEngagementService(repo engagement.Repository, books, authors engagement.EntityChecker) engagement.Service {
	return &engagementService{
		repo:    repo,
		books:   books,
		authors: authors,
	}
}

func (s *engagementService) checker(kind model.Kind) engagement.EntityChecker {
	if kind == model.KindAuthor {
		return s.authors
	}
	return s.books
}

func (s *engagementService) AddReview(ctx context.Context, kind model.Kind, entityID, userID uuid.UUID, userEmail string, req model.AddReviewRequest) (*model.Metadata, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.checker(kind).ExistsByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("check %s exists: %w", kind, err)
	}
	if !exists {
		return nil, engagement.ErrEntityNotFound
	}

	review := model.Review{
		UserID:    userID.String(),
		UserEmail: userEmail,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}

	metadata, err := s.repo.AppendReview(ctx, kind, entityID.String(), review)
	if err != nil {
		return nil, fmt.Errorf("append review: %w", err)
	}

	return metadata, nil
}

func (s *engagementService) GetMetadata(ctx context.Context, kind model.Kind, entityID uuid.UUID) (*model.Metadata, error) {
	return s.repo.Get(ctx, kind, entityID.String())
}

func (s *engagementService) RecordView(ctx context.Context, kind model.Kind, entityID uuid.UUID) {
	if err := s.repo.IncrementViewCount(ctx, kind, entityID.String()); err != nil {
		// The detail fetch must still succeed; the counter is best-effort.
		log.Error().
			Err(err).
			Str("kind", string(kind)).
			Str("entity_id", entityID.String()).
			Msg("Failed to record view")
	}
}

func (s *engagementService) DeleteMetadata(ctx context.Context, kind model.Kind, entityID uuid.UUID) error {
	return s.repo.Delete(ctx, kind, entityID.String())
}

func (s *engagementService) SweepOrphans(ctx context.Context, kind model.Kind) (int, error) {
	ids, err := s.repo.ListEntityIDs(ctx, kind)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		entityID, err := uuid.Parse(id)
		if err != nil {
			// Malformed key: the owning row can never exist.
			if err := s.repo.Delete(ctx, kind, id); err != nil {
				return removed, err
			}
			removed++
			continue
		}

		exists, err := s.checker(kind).ExistsByID(ctx, entityID)
		if err != nil {
			return removed, fmt.Errorf("check %s %s exists: %w", kind, id, err)
		}
		if exists {
			continue
		}

		if err := s.repo.Delete(ctx, kind, id); err != nil {
			return removed, err
		}
		removed++

		log.Info().
			Str("kind", string(kind)).
			Str("entity_id", id).
			Msg("Removed orphaned metadata document")
	}

	return removed, nil
}

func (s *engagementService) ReconcileAggregates(ctx context.Context, kind model.Kind) (int, error) {
	docs, err := s.repo.ListAll(ctx, kind)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for i := range docs {
		doc := &docs[i]
		if !doc.Drifted() {
			continue
		}

		agg := model.Recompute(doc.Reviews)
		if err := s.repo.SetAggregates(ctx, kind, doc.EntityID, agg); err != nil {
			return repaired, err
		}
		repaired++

		log.Warn().
			Str("kind", string(kind)).
			Str("entity_id", doc.EntityID).
			Float64("stored_average", doc.AverageRating).
			Float64("recomputed_average", agg.AverageRating).
			Msg("Repaired drifted aggregates")
	}

	return repaired, nil
}

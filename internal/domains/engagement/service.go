package engagement

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/engagement/model"
)

// EntityChecker answers whether a relational entity exists. The book and
// author repositories both satisfy it.
type EntityChecker interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service is the engagement business logic: review appends with aggregate
// recomputation, view counting, metadata composition and cleanup.
type Service interface {
	// AddReview validates the request, checks the target entity exists and
	// appends the review. Returns the metadata with fresh aggregates.
	// Errors: ErrEntityNotFound, validation errors from the request DTO.
	AddReview(ctx context.Context, kind model.Kind, entityID, userID uuid.UUID, userEmail string, req model.AddReviewRequest) (*model.Metadata, error)

	// GetMetadata returns the metadata document, or nil when none exists.
	GetMetadata(ctx context.Context, kind model.Kind, entityID uuid.UUID) (*model.Metadata, error)

	// RecordView increments the view counter as a side effect of a detail
	// fetch. Failures are logged, not surfaced: a read must not fail
	// because a counter could not be bumped.
	RecordView(ctx context.Context, kind model.Kind, entityID uuid.UUID)

	// DeleteMetadata removes the document for a deleted entity.
	DeleteMetadata(ctx context.Context, kind model.Kind, entityID uuid.UUID) error

	// SweepOrphans deletes metadata documents whose owning entity no longer
	// exists. Returns the number of documents removed.
	SweepOrphans(ctx context.Context, kind model.Kind) (int, error)

	// ReconcileAggregates recomputes aggregates from the stored review
	// arrays and repairs any drift. Returns the number of repaired documents.
	ReconcileAggregates(ctx context.Context, kind model.Kind) (int, error)
}

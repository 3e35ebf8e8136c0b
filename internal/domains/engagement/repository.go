package engagement

import (
	"context"

	"bookcatalog-backend/internal/domains/engagement/model"
)

// Repository is the engagement store: one metadata document per entity,
// keyed by entity_id, with an independent lifecycle from the entity rows.
type Repository interface {
	// AppendReview appends a review to the keyed document (creating it if
	// absent) and recomputes average_rating and total_reviews in the same
	// single-document update. Observers never see the reviews array out of
	// sync with the aggregates.
	AppendReview(ctx context.Context, kind model.Kind, entityID string, review model.Review) (*model.Metadata, error)

	// IncrementViewCount bumps view_count by one, upserting the document.
	IncrementViewCount(ctx context.Context, kind model.Kind, entityID string) error

	// Get fetches the metadata document for an entity.
	// Returns (nil, nil) when no document exists yet: metadata is lazy.
	Get(ctx context.Context, kind model.Kind, entityID string) (*model.Metadata, error)

	// Delete removes the metadata document. Missing documents are not an error.
	Delete(ctx context.Context, kind model.Kind, entityID string) error

	// ListEntityIDs returns the entity ids of all documents of a kind.
	// Used by the orphan sweep.
	ListEntityIDs(ctx context.Context, kind model.Kind) ([]string, error)

	// ListAll returns every metadata document of a kind.
	// Used by the aggregate reconciliation job.
	ListAll(ctx context.Context, kind model.Kind) ([]model.Metadata, error)

	// SetAggregates overwrites the derived fields of a document.
	SetAggregates(ctx context.Context, kind model.Kind, entityID string, agg model.Aggregate) error
}

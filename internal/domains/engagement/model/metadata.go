package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind selects which metadata collection an operation targets.
type Kind string

const (
	KindBook   Kind = "book"
	KindAuthor Kind = "author"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5

	MaxCommentLength = 2000
)

// Review is a single embedded review inside a metadata document.
// Entity and user IDs are stored as UUID strings, matching the relational rows.
type Review struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	UserEmail string    `bson:"user_email,omitempty" json:"user_email,omitempty"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   *string   `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Metadata is the per-entity engagement document: one per book, one per
// author, created lazily on first review or first view.
type Metadata struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EntityID      string             `bson:"entity_id" json:"entity_id"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	TotalReviews  int                `bson:"total_reviews" json:"total_reviews"`
	Tags          []string           `bson:"tags" json:"tags"`
	ViewCount     int64              `bson:"view_count" json:"view_count"`
}

// AddReviewRequest - POST /v1/books/:id/reviews and /v1/authors/:id/reviews
type AddReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func (r AddReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.Comment, validation.Length(0, MaxCommentLength)),
	)
}

// DeleteMetadataPayload is the asynq task payload enqueued after an entity
// delete; the worker performs the best-effort cross-store cleanup.
type DeleteMetadataPayload struct {
	Kind     Kind   `json:"kind"`
	EntityID string `json:"entity_id"`
}

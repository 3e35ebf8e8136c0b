package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 5000
)

type Book struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description,omitempty" db:"description"`
	PublishedDate *time.Time `json:"published_date,omitempty" db:"published_date"`
	CoverURL      *string    `json:"cover_url,omitempty" db:"cover_url"`
	AuthorID      uuid.UUID  `json:"author_id" db:"author_id"`
	// AuthorName is denormalized into reads via a join; it is not a column
	// on the books table.
	AuthorName string    `json:"author_name,omitempty" db:"author_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	CoverURL      *string `json:"cover_url,omitempty"`
	AuthorID      string  `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&r.PublishedDate, validation.Date(time.DateOnly)),
		validation.Field(&r.CoverURL, is.URL),
		validation.Field(&r.AuthorID, validation.Required, is.UUID),
	)
}

// UpdateBookRequest - PUT /v1/books/:id
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	CoverURL      *string `json:"cover_url,omitempty"`
	AuthorID      *string `json:"author_id,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&r.PublishedDate, validation.Date(time.DateOnly)),
		validation.Field(&r.CoverURL, is.URL),
		validation.Field(&r.AuthorID, is.UUID),
	)
}

// BookFilter - query parameters for GET /v1/books
type BookFilter struct {
	Title           string
	AuthorID        *uuid.UUID
	PublishedAfter  *time.Time
	PublishedBefore *time.Time
	Pagination      shared.Pagination
}

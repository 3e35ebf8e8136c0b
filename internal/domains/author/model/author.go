package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared"
)

const (
	MaxNameLength      = 255
	MaxBiographyLength = 5000
)

type Author struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Biography *string    `json:"biography,omitempty" db:"biography"`
	BornDate  *time.Time `json:"born_date,omitempty" db:"born_date"`
	PhotoURL  *string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateAuthorRequest - POST /v1/authors
// Dates travel as "2006-01-02" strings; the service parses and validates them.
type CreateAuthorRequest struct {
	Name      string  `json:"name"`
	Biography *string `json:"biography,omitempty"`
	BornDate  *string `json:"born_date,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&r.Biography, validation.Length(0, MaxBiographyLength)),
		validation.Field(&r.BornDate, validation.Date(time.DateOnly)),
		validation.Field(&r.PhotoURL, is.URL),
	)
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// All fields optional for partial updates.
type UpdateAuthorRequest struct {
	Name      *string `json:"name,omitempty"`
	Biography *string `json:"biography,omitempty"`
	BornDate  *string `json:"born_date,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, MaxNameLength)),
		validation.Field(&r.Biography, validation.Length(0, MaxBiographyLength)),
		validation.Field(&r.BornDate, validation.Date(time.DateOnly)),
		validation.Field(&r.PhotoURL, is.URL),
	)
}

// AuthorFilter - query parameters for GET /v1/authors
type AuthorFilter struct {
	Name       string
	BornAfter  *time.Time
	BornBefore *time.Time
	Pagination shared.Pagination
}

package author

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/author/model"
)

// BookCounter reports how many books reference a given author. The
// delete guard depends on it instead of a database-level foreign key
// cascade so the conflict surfaces as a domain error.
type BookCounter interface {
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

type Service interface {
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetPhotoURL(ctx context.Context, id uuid.UUID, url string) (*model.Author, error)
}

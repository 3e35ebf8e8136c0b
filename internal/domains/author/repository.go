package author

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/author/model"
)

type Repository interface {
	Create(ctx context.Context, author *model.Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

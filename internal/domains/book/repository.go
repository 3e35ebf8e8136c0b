package book

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/book/model"
)

type Repository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	ListAll(ctx context.Context) ([]model.Book, error)
}
